package editor

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"log"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/yolomark/internal/classes"
	"github.com/example/yolomark/internal/clipboard"
	"github.com/example/yolomark/internal/config"
	"github.com/example/yolomark/internal/notify"
	"github.com/example/yolomark/internal/render"
	"github.com/example/yolomark/internal/session"
	"github.com/example/yolomark/internal/yolo"
)

const messageDuration = 2 * time.Second

// UI hosts one annotation session in a shiny window.
type UI struct {
	Sess     *session.Session
	Reg      *classes.Registry
	Cfg      *config.Config
	Notifier *notify.Notifier
}

// Run opens the window and blocks until it closes. A dirty set is
// flushed according to the autosave setting on the way out.
func (u *UI) Run() { driver.Main(u.main) }

func (u *UI) main(s screen.Screen) {
	sess := u.Sess
	b := sess.Img.Bounds()
	width := b.Dx()
	height := b.Dy() + statusHeight
	if width < 640 {
		width = 640
	}
	if height < 480 {
		height = 480
	}

	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  width,
		Height: height,
		Title:  "yolomark",
	})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	ctrl := New(sess.Set, sess.Hist, b.Dx(), b.Dy())
	ctrl.Class = u.Cfg.DefaultClass
	ctrl.OnEdit = func() {
		sess.Set = ctrl.Set
		sess.MarkDirty()
	}
	ctrl.Fit(width, height-statusHeight)

	var message string
	var messageUntil time.Time
	say := func(format string, args ...any) {
		message = fmt.Sprintf(format, args...)
		log.Print(message)
		messageUntil = time.Now().Add(messageDuration)
	}

	repaint := func() { w.Send(paint.Event{}) }

	attach := func() {
		nb := sess.Img.Bounds()
		ctrl.Attach(sess.Set, sess.Hist, nb.Dx(), nb.Dy())
		ctrl.Fit(width, height-statusHeight)
	}

	navigate := func(fn func() error) {
		sess.Set = ctrl.Set
		if err := fn(); err != nil {
			say("navigate: %v", err)
			return
		}
		attach()
	}

	save := func() {
		sess.Set = ctrl.Set
		if err := sess.Save(); err != nil {
			say("save: %v", err)
			return
		}
		say("saved %s", sess.LabelPath())
		u.Notifier.Save(sess.LabelPath())
	}

	copyImage := func() {
		sess.Set = ctrl.Set
		img, err := render.Annotated(sess.Img, ctrl.Set, u.Reg, render.Options{})
		if err != nil {
			say("copy: %v", err)
			return
		}
		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		if err := clipboard.WriteImage(rgba); err != nil {
			say("copy: %v", err)
			return
		}
		say("annotated image copied to clipboard")
	}

	copyText := func() {
		sess.Set = ctrl.Set
		nb := sess.Img.Bounds()
		var buf bytes.Buffer
		if err := yolo.Encode(&buf, ctrl.Set, nb.Dx(), nb.Dy()); err != nil {
			say("copy labels: %v", err)
			return
		}
		if err := clipboard.WriteText(buf.String()); err != nil {
			say("copy labels: %v", err)
			return
		}
		say("labels copied to clipboard")
	}

	status := func() string {
		s := statusLine(sess.ImageName(), sess.Index(), sess.Len(),
			u.Reg.Name(ctrl.Class), ctrl.Class, ctrl.View.Zoom,
			sess.Dirty(), ctrl.DrawEnabled)
		if message != "" && time.Now().Before(messageUntil) {
			s += "  |  " + message
		}
		return s
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				if sess.Dirty() && sess.Autosave {
					if err := sess.Save(); err != nil {
						log.Printf("save on exit: %v", err)
					}
				}
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			repaint()
		case paint.Event:
			u.paint(s, w, ctrl, width, height, status())
		case mouse.Event:
			switch {
			case e.Button == mouse.ButtonWheelUp && e.Direction == mouse.DirPress:
				ctrl.Zoom(float64(e.X), float64(e.Y), true)
				repaint()
			case e.Button == mouse.ButtonWheelDown && e.Direction == mouse.DirPress:
				ctrl.Zoom(float64(e.X), float64(e.Y), false)
				repaint()
			case e.Direction == mouse.DirPress:
				if btn, ok := mapButton(e.Button); ok {
					ctrl.Press(float64(e.X), float64(e.Y), btn)
					repaint()
				}
			case e.Direction == mouse.DirRelease:
				if btn, ok := mapButton(e.Button); ok {
					ctrl.Release(float64(e.X), float64(e.Y), btn)
					repaint()
				}
			case e.Direction == mouse.DirNone:
				if ctrl.Mode() != ModeIdle {
					ctrl.Move(float64(e.X), float64(e.Y))
					repaint()
				}
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			r := unicode.ToLower(e.Rune)
			ctrlDown := e.Modifiers&key.ModControl != 0
			shiftDown := e.Modifiers&key.ModShift != 0
			switch {
			case ctrlDown && r == 's':
				save()
			case ctrlDown && r == 'z' && shiftDown:
				if !ctrl.Redo() {
					say("nothing to redo")
				}
				sess.Set = ctrl.Set
			case ctrlDown && r == 'z':
				if !ctrl.Undo() {
					say("nothing to undo")
				}
				sess.Set = ctrl.Set
			case ctrlDown && r == 'c' && shiftDown:
				copyText()
			case ctrlDown && r == 'c':
				copyImage()
			case r == 'a':
				navigate(sess.Prev)
			case r == 'd':
				navigate(sess.Next)
			case r == 'f':
				ctrl.Fit(width, height-statusHeight)
			case r == 'r':
				ctrl.ResetZoom(width, height-statusHeight)
			case r == 'w':
				if ctrl.ToggleDraw() {
					say("drawing enabled")
				} else {
					say("drawing disabled")
				}
			case r >= '0' && r <= '9':
				ctrl.SetClass(int(r - '0'))
			case r == 'q', e.Code == key.CodeEscape:
				if sess.Dirty() && sess.Autosave {
					if err := sess.Save(); err != nil {
						log.Printf("save on exit: %v", err)
					}
				}
				return
			case e.Code == key.CodeDeleteForward, e.Code == key.CodeDeleteBackspace:
				if !ctrl.DeleteSelected() {
					say("no box selected")
				}
			}
			repaint()
		}
	}
}

func (u *UI) paint(s screen.Screen, w screen.Window, ctrl *Controller, width, height int, status string) {
	buf, err := s.NewBuffer(image.Point{width, height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer buf.Release()

	st := frameState{
		width:      width,
		height:     height,
		img:        u.Sess.Img,
		boxes:      ctrl.Set.Boxes(),
		selected:   ctrl.Selected,
		hideIdx:    -1,
		view:       ctrl.View,
		reg:        u.Reg,
		showLabels: true,
		status:     status,
	}
	if draft, hide, ok := ctrl.Draft(); ok {
		st.draft = &draft
		st.hideIdx = hide
	}
	renderFrame(buf.RGBA(), st)

	w.Upload(image.Point{}, buf, buf.Bounds())
	w.Publish()
}

func mapButton(b mouse.Button) (Button, bool) {
	switch b {
	case mouse.ButtonLeft:
		return ButtonLeft, true
	case mouse.ButtonMiddle:
		return ButtonMiddle, true
	}
	return 0, false
}


/*
Copyright 2020 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package term is the terminal front-end: a tcell event loop driving a tree
// of views, one of which draws a chart with braille characters.
package term

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell"
)

// View is a widget that can be given part of the screen (Resizable) and
// draw itself there (Flushable).
type View interface {
	Flushable
	Resizable
}

// Runner owns the screen and its event loop.  Events are dispatched like so:
//
// - resize events resize and redraw the current view
// - update requests swap in a new view and draw it
// - repaint requests redraw the current view
// - key events go to the KeyHandler
//
// KeyHandler runs on the event loop goroutine, so it may touch whatever the
// views draw from without further locking, and then ask for a repaint.
type Runner struct {
	screen   tcell.Screen
	screenMu sync.Mutex

	// KeyHandler receives key events.  It must be specified.
	KeyHandler func(*tcell.EventKey)

	// MakeScreen allows custom screens to be used, mainly for testing.
	MakeScreen func() (tcell.Screen, error)

	// OnStart is run once the screen is initialized, just before the event
	// loop starts.
	OnStart func()
}

// Run sets up the screen and runs the event loop, starting with the given
// view (which may be nil), until ctx is done.  The screen is shut down
// before Run returns.
func (r *Runner) Run(ctx context.Context, initialView View) error {
	makeScreen := r.MakeScreen
	if makeScreen == nil {
		makeScreen = tcell.NewScreen
	}
	screen, err := makeScreen()
	if err != nil {
		return fmt.Errorf("unable to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("unable to initialize screen: %w", err)
	}

	r.screenMu.Lock()
	r.screen = screen
	r.screenMu.Unlock()

	mainView := initialView
	// paint once up front in case we never get an initial resize event
	if mainView != nil {
		cols, rows := screen.Size()
		mainView.SetBox(PositionBox{Cols: cols, Rows: rows})
		mainView.FlushTo(screen)
		screen.Show()
	}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if r.OnStart != nil {
			r.OnStart()
		}
		for evt := screen.PollEvent(); evt != nil; evt = screen.PollEvent() {
			cols, rows := screen.Size()
			switch evt := evt.(type) {
			case *tcell.EventKey:
				if r.KeyHandler != nil {
					r.KeyHandler(evt)
				}
				continue
			case *tcell.EventInterrupt:
				if newView, ok := evt.Data().(View); ok {
					// clear so nothing of the old view's layout lingers
					screen.Clear()
					mainView = newView
					mainView.SetBox(PositionBox{Cols: cols, Rows: rows})
				}
			case *tcell.EventResize:
				cols, rows = evt.Size()
				if mainView != nil {
					mainView.SetBox(PositionBox{Cols: cols, Rows: rows})
				}
				screen.Clear()
			default:
				continue
			}

			if mainView == nil {
				continue
			}
			mainView.FlushTo(screen)
			screen.Show()
		}
	}()

	<-ctx.Done()
	// Fini makes PollEvent return nil, ending the loop
	screen.Fini()
	<-loopDone

	return nil
}

func (r *Runner) post(evt tcell.Event) {
	r.screenMu.Lock()
	defer r.screenMu.Unlock()
	if r.screen == nil {
		return
	}
	// NB: PostEvent only fails when the queue is full, in which case a
	// redraw is already on its way
	_ = r.screen.PostEvent(evt)
}

// RequestRepaint asks for the current view to be redrawn.  It doesn't
// block.
func (r *Runner) RequestRepaint() {
	r.post(tcell.NewEventInterrupt(nil))
}

// RequestUpdate replaces the current view and asks for it to be drawn.  It
// doesn't block.
func (r *Runner) RequestUpdate(newView View) {
	r.post(tcell.NewEventInterrupt(newView))
}

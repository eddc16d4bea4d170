// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"slices"

	"github.com/cadkit/cadkit/base/errors"
	"github.com/cadkit/cadkit/base/logx"
	"github.com/cadkit/cadkit/model"
)

// App ties an event loop to the documents open on it and the host
// settings. Apart from [App.Quit], all App methods are confined to
// the loop goroutine, like the documents they manage.
type App struct {

	// Name is the app name, used for the settings search paths.
	Name string

	// Loop is the event loop that the app's documents and
	// observers run on.
	Loop *Loop

	// Settings are the host settings, loaded by [NewApp].
	Settings Settings

	// Docs are the open documents.
	Docs []*model.Document

	// active is the index of the active document in Docs, -1 if none.
	active int
}

// NewApp returns a new app with the given name: it sets up the
// default logger, loads and applies the settings found on the
// standard paths, and creates the event loop. Settings files that
// fail to read are logged and skipped.
func NewApp(name string) *App {
	ap := &App{Name: name, Loop: NewLoop(), active: -1}
	logx.SetDefaultLogger()
	ap.Settings.Defaults()
	errors.Log(OpenSettings(&ap.Settings, name))
	ap.Settings.Apply()
	return ap
}

// NewDocument creates a new document with the given name, attaches
// it to the app's loop, and makes it the active document.
func (ap *App) NewDocument(name string) *model.Document {
	dc := model.NewDocument(name)
	ap.wire(dc)
	return dc
}

// OpenDocument opens a document from the given JSON file, attaches
// it to the app's loop, and makes it the active document.
func (ap *App) OpenDocument(filename string) (*model.Document, error) {
	dc, err := model.OpenDocumentJSON(filename)
	if err != nil {
		return nil, err
	}
	ap.wire(dc)
	return dc, nil
}

// wire attaches the given document to the app.
func (ap *App) wire(dc *model.Document) {
	dc.Scheduler = ap.Loop
	dc.Undos.Max = ap.Settings.MaxUndoRecords
	ap.Docs = append(ap.Docs, dc)
	ap.active = len(ap.Docs) - 1
}

// ActiveDocument returns the active document, or nil if none.
func (ap *App) ActiveDocument() *model.Document {
	if ap.active < 0 || ap.active >= len(ap.Docs) {
		return nil
	}
	return ap.Docs[ap.active]
}

// SetActiveDocument makes the given open document the active one.
func (ap *App) SetActiveDocument(dc *model.Document) error {
	idx := slices.Index(ap.Docs, dc)
	if idx < 0 {
		return errors.New("host: document is not open in this app")
	}
	ap.active = idx
	return nil
}

// CloseDocument closes the given document and removes it from the
// app. Closing the active document activates the previous one.
func (ap *App) CloseDocument(dc *model.Document) {
	idx := slices.Index(ap.Docs, dc)
	if idx < 0 {
		return
	}
	ap.Docs = slices.Delete(ap.Docs, idx, idx+1)
	if idx <= ap.active {
		ap.active--
	}
	if ap.active < 0 && len(ap.Docs) > 0 {
		ap.active = 0
	}
	dc.Close()
}

// Run runs the app's event loop on the calling goroutine until
// [App.Quit].
func (ap *App) Run() {
	ap.Loop.Run()
}

// Quit closes all open documents and stops the event loop. It can
// be called from any goroutine: the documents close on the loop
// goroutine before it stops.
func (ap *App) Quit() {
	ap.Loop.Post(func() {
		for _, dc := range slices.Clone(ap.Docs) {
			ap.CloseDocument(dc)
		}
		ap.Loop.Quit()
	})
}

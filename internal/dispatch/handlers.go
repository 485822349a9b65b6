package dispatch

import (
	"f3os/internal/config"
	"f3os/internal/errors"
	"f3os/internal/log"
	"f3os/internal/navigator"
)

func (d *Dispatcher) changeDirectory(args []string) Result {
	target := arg(args, 0)
	nav := d.session.Nav

	if target == navigator.ParentToken {
		if nav.Up() {
			d.session.OpenFile = ""
		}
		return d.showDirectory(nil)
	}

	if err := nav.Enter(target); err != nil {
		log.LogWithError(err).Debug("change directory failed")
		return d.failure(err, config.TextDirectoryCorrupted)
	}
	d.session.OpenFile = ""
	return d.showDirectory(nil)
}

func (d *Dispatcher) showDirectory(_ []string) Result {
	listing, err := d.session.Nav.List()
	if err != nil {
		log.LogWithError(err).Debug("listing failed")
		return d.failure(err, config.TextDirectoryCorrupted)
	}
	lines := d.cfg.GetText(config.TextDirectoryHeader, nil)
	return Result{Lines: append(lines, listing.Lines()...), Render: true}
}

func (d *Dispatcher) readFile(args []string) Result {
	doc, err := d.session.Nav.Read(arg(args, 0))
	var lines []string
	if err == nil {
		lines, err = doc.Visible()
	}
	if err != nil {
		log.LogWithError(err).Debug("read failed")
		return d.failure(err, config.TextFileCorrupted)
	}
	d.session.OpenFile = doc.Name
	return Result{Lines: lines, Render: true}
}

// hackFile shows a gated document without the sentinel check, including the
// part a plain read hides.
func (d *Dispatcher) hackFile(args []string) Result {
	doc, err := d.session.Nav.Read(arg(args, 0))
	if err != nil {
		log.LogWithError(err).Debug("bypass failed")
		return d.failure(err, config.TextFileCorrupted)
	}
	d.session.OpenFile = doc.Name

	if !doc.Restricted {
		return Result{Lines: doc.Lines, Render: true}
	}
	log.LogWithFields(log.F("file", doc.Name)).Info("restriction bypassed")
	lines := d.cfg.GetText(config.TextHackSuccess, nil)
	return Result{Lines: append(lines, doc.Gated()...), Render: true}
}

// exitFile closes the open document and goes back to the listing
func (d *Dispatcher) exitFile(_ []string) Result {
	if d.session.OpenFile == "" {
		return d.showDirectory(nil)
	}
	d.session.OpenFile = ""

	lines := d.cfg.GetText(config.TextFileClosed, nil)
	listing := d.showDirectory(nil)
	return Result{Lines: append(lines, listing.Lines...), Render: true}
}

func (d *Dispatcher) exitApp(_ []string) Result {
	log.Info("session terminated")
	return Result{Quit: true}
}

func (d *Dispatcher) showHelp(_ []string) Result {
	if lines, ok := d.cfg.Lines(config.KeyHelpText); ok {
		return Result{Lines: lines, Render: true}
	}
	missing := d.cfg.GetText(config.TextMissingHelpText, nil)
	return Result{Lines: d.cfg.GetText(config.KeyHelpText, missing), Render: true}
}

func (d *Dispatcher) unknownCommand(_ []string) Result {
	return d.text(config.TextUnknownCommand)
}

// failure maps a navigator error to its message. An invalid name gets the
// fallback of the operation that rejected it.
func (d *Dispatcher) failure(err error, fallback string) Result {
	switch {
	case errors.Is(err, errors.ErrAccessDenied):
		return d.text(config.TextAccessDenied)
	case errors.Is(err, errors.ErrDirectoryCorrupted):
		return d.text(config.TextDirectoryCorrupted)
	case errors.Is(err, errors.ErrFileNotFound):
		return d.text(config.TextFileCorrupted)
	case errors.Is(err, errors.ErrInvalidPath):
		return d.text(fallback)
	}
	log.LogWithError(err).Warn("unmapped error")
	return d.text(fallback)
}

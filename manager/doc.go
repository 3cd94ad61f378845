// Package manager is the high-level entry point for a product's files.
//
// A Layout is computed once from a config.Config and names every well-known
// directory: the root found by ascending from the executable's directory,
// the engine and project trees below it, and the per-user and machine-wide
// data directories. A Manager pairs a Layout with a core.Backend and adds
// whole-file helpers and archive construction on top of the backend's
// streams.
//
// Example usage:
//
//	cfg, err := config.Load(native.New())
//	if err != nil {
//	    return err
//	}
//	layout, err := manager.NewLayout(cfg)
//	if err != nil {
//	    return err
//	}
//	m := manager.New(native.New(), layout)
//	text, err := m.ReadText(layout.Project.Config + "game.ini")
package manager

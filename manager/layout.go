package manager

import (
	"github.com/jmgilman/go/vfs/config"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

// EngineDirs are the directories of the engine tree. Every path ends with
// a separator.
type EngineDirs struct {
	Root         string
	Content      string
	Config       string
	Source       string
	Intermediate string
	Saved        string
	// User is the per-user base of Saved.
	User string
}

// ProjectDirs are the directories of the project tree. Every path ends
// with a separator.
type ProjectDirs struct {
	Root         string
	Content      string
	Config       string
	Source       string
	Intermediate string
	Saved        string
	Cache        string
	Logs         string
	Crashdump    string
	Screenshots  string
	BugReport    string
	Profiling    string
	Developer    string
	// User is the per-user base of Saved and the diagnostic directories.
	User string
}

// Layout is the resolved directory taxonomy of one product. It is
// immutable once built.
type Layout struct {
	// Root is the canonical directory containing the engine and project
	// trees.
	Root string
	// Launch is the directory of the running executable.
	Launch string

	Engine  EngineDirs
	Project ProjectDirs

	// UserSettings is {user settings}/{company}/{product}/.
	UserSettings string
	// CommonData is {common data}/{company}/{product}/.
	CommonData string
}

// NewLayout resolves the directory taxonomy from cfg. cfg must be resolved;
// empty base directories are rejected.
func NewLayout(cfg *config.Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for name, dir := range map[string]string{
		"base directory":          cfg.BaseDir,
		"user settings directory": cfg.UserSettingsDir,
		"common data directory":   cfg.CommonDataDir,
	} {
		if dir == "" {
			return nil, errors.WithOp(errors.Newf(errors.CodeInvalidPath, "%s is not set", name), "new_layout", "")
		}
	}

	root, err := pathutil.Canonicalize(pathutil.Append(pathutil.AddSeparator(pathutil.Normalize(cfg.BaseDir)), cfg.RootAscent))
	if err != nil {
		return nil, errors.WithContext(errors.WithOp(err, "new_layout", cfg.BaseDir), "ascent", cfg.RootAscent)
	}
	root = pathutil.AddSeparator(root)

	engine := subdir(root, cfg.EngineDir)
	project := subdir(root, cfg.ProjectDir)

	return &Layout{
		Root:   root,
		Launch: pathutil.AddSeparator(pathutil.Normalize(cfg.BaseDir)),
		Engine: EngineDirs{
			Root:         engine,
			Content:      subdir(engine, "content"),
			Config:       subdir(engine, "config"),
			Source:       subdir(engine, "source"),
			Intermediate: subdir(engine, "intermediate"),
			Saved:        subdir(engine, "saved"),
			User:         engine,
		},
		Project: ProjectDirs{
			Root:         project,
			Content:      subdir(project, "content"),
			Config:       subdir(project, "config"),
			Source:       subdir(project, "source"),
			Intermediate: subdir(project, "intermediate"),
			Saved:        subdir(project, "saved"),
			Cache:        subdir(project, "cache"),
			Logs:         subdir(project, "logs"),
			Crashdump:    subdir(project, "crashdump"),
			Screenshots:  subdir(project, "screenshots"),
			BugReport:    subdir(project, "bugreport"),
			Profiling:    subdir(project, "profiling"),
			Developer:    subdir(project, "developer"),
			User:         project,
		},
		UserSettings: productDir(cfg.UserSettingsDir, cfg.Company, cfg.Product),
		CommonData:   productDir(cfg.CommonDataDir, cfg.Company, cfg.Product),
	}, nil
}

func subdir(parent, name string) string {
	return pathutil.AddSeparator(pathutil.Append(parent, pathutil.Normalize(name)))
}

func productDir(base, company, product string) string {
	return pathutil.AddSeparator(pathutil.Combine(pathutil.Normalize(base), company, product))
}

// WritableDirectories returns the directories a running product writes to,
// in creation order.
func (l *Layout) WritableDirectories() []string {
	return []string{
		l.Engine.Saved,
		l.Project.Saved,
		l.Project.Cache,
		l.Project.Logs,
		l.Project.Crashdump,
		l.Project.Screenshots,
		l.Project.BugReport,
		l.Project.Profiling,
		l.Project.Developer,
		l.UserSettings,
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/jmgilman/go/vfs/config"
	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/manager"
	"github.com/jmgilman/go/vfs/pathutil"
)

func (e *env) printJSON(v any) error {
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (e *env) printLines(lines []string) error {
	if e.opts.json {
		if lines == nil {
			lines = []string{}
		}
		return e.printJSON(lines)
	}
	for _, line := range lines {
		fmt.Fprintln(e.stdout, line)
	}
	return nil
}

func (e *env) manager() (*manager.Manager, error) {
	cfg, err := config.Load(e.backend)
	if err != nil {
		return nil, err
	}
	layout, err := manager.NewLayout(cfg)
	if err != nil {
		return nil, err
	}
	return manager.New(e.backend, layout, manager.WithLogger(e.logger)), nil
}

func cmdLayout(e *env, _ []string) error {
	m, err := e.manager()
	if err != nil {
		return err
	}
	l := m.Layout()

	rows := []struct {
		name string
		path string
	}{
		{"root", l.Root},
		{"launch", l.Launch},
		{"engine", l.Engine.Root},
		{"engine.content", l.Engine.Content},
		{"engine.config", l.Engine.Config},
		{"engine.source", l.Engine.Source},
		{"engine.intermediate", l.Engine.Intermediate},
		{"engine.saved", l.Engine.Saved},
		{"project", l.Project.Root},
		{"project.content", l.Project.Content},
		{"project.config", l.Project.Config},
		{"project.source", l.Project.Source},
		{"project.intermediate", l.Project.Intermediate},
		{"project.saved", l.Project.Saved},
		{"project.cache", l.Project.Cache},
		{"project.logs", l.Project.Logs},
		{"project.crashdump", l.Project.Crashdump},
		{"project.screenshots", l.Project.Screenshots},
		{"project.bugreport", l.Project.BugReport},
		{"project.profiling", l.Project.Profiling},
		{"project.developer", l.Project.Developer},
		{"user_settings", l.UserSettings},
		{"common_data", l.CommonData},
	}

	if e.opts.json {
		out := make(map[string]string, len(rows))
		for _, r := range rows {
			out[r.name] = r.path
		}
		return e.printJSON(out)
	}

	w := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATH")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", r.name, r.path)
	}
	return w.Flush()
}

func cmdEnsure(e *env, _ []string) error {
	m, err := e.manager()
	if err != nil {
		return err
	}
	if err := m.EnsureDirectories(e.ctx); err != nil {
		return err
	}
	return e.printLines(m.Layout().WritableDirectories())
}

func cmdCanonicalize(e *env, args []string) error {
	result, err := pathutil.Canonicalize(pathutil.Normalize(args[0]))
	if err != nil {
		return err
	}
	return e.printLines([]string{result})
}

func cmdRelative(e *env, args []string) error {
	result, err := pathutil.Relative(args[0], args[1])
	if err != nil {
		return err
	}
	return e.printLines([]string{result})
}

func cmdFind(e *env, args []string) error {
	var (
		found []string
		err   error
	)
	if e.opts.glob {
		found, err = core.FindFilesMatching(e.backend, args[0], args[1])
	} else {
		found, err = core.FindFilesRecursive(e.backend, args[0], args[1])
	}
	if err != nil {
		return err
	}
	return e.printLines(found)
}

func cmdCopyTree(e *env, args []string) error {
	source, destination := args[0], args[1]

	exists, err := e.backend.Exists(destination)
	if err != nil {
		return err
	}
	if !exists {
		if err := core.DirectoryTreeCreate(e.backend, destination); err != nil {
			return err
		}
	}
	return core.DirectoryTreeCopy(e.backend, destination, source, e.opts.overwrite)
}

func cmdDeleteTree(e *env, args []string) error {
	return core.DirectoryTreeDelete(e.backend, args[0])
}

func cmdCat(e *env, args []string) error {
	s, err := e.backend.OpenRead(args[0], false)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	data, err := core.ReadAll(s)
	if err != nil {
		return err
	}
	_, err = e.stdout.Write(data)
	return err
}

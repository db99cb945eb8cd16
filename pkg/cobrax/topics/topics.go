// Package topics provides topic-based help for cobra command trees.
// Topics are markdown or text files read from an fs.FS, typically an
// embedded directory, and are shown by `<root> help <topic>`.
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// OptionPrefix marks topics that document a flag; they are listed and
// looked up as --name
const OptionPrefix = "option-"

// Manager holds the help topics of a command tree
type Manager struct {
	fsys         fs.FS
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic is a single help document
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures the Manager
type Options struct {
	// Extensions is the list of file extensions to consider as topics.
	// Defaults to [".txt", ".md"].
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// New creates a Manager reading topics from fsys
func New(fsys fs.FS, opts Options) *Manager {
	m := &Manager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	return m
}

// Load reads every topic file in the tree. Topics in subdirectories are
// named after their base name.
func (m *Manager) Load() error {
	return fs.WalkDir(m.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !m.supported(path.Ext(p)) {
			return nil
		}

		content, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get retrieves a topic by name. Flag spellings such as --backup resolve
// to the option- topic of the same name.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")

	if topic, ok := m.topics[name]; ok {
		return topic, true
	}
	topic, ok := m.topics[OptionPrefix+name]
	return topic, ok
}

// Names returns all topic names, sorted
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats a topic with the configured renderer
func (m *Manager) Render(t *Topic) string {
	return m.renderer.Render(t.Content, path.Ext(t.Path))
}

// Initialize loads the topics of fsys and installs a help command and help
// function on root that know about them
func Initialize(root *cobra.Command, fsys fs.FS, opts Options) (*Manager, error) {
	m := New(fsys, opts)
	if err := m.Load(); err != nil {
		return nil, fmt.Errorf("failed to load help topics: %w", err)
	}

	m.originalHelp = root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		// flag topics such as --backup arrive as arguments
		DisableFlagParsing: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				m.originalHelp(root, []string{})
				return
			}

			if args[0] == "topics" {
				m.printIndex(cmd, root.Name())
				return
			}

			if topic, ok := m.Get(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), m.Render(topic))
				return
			}

			if target, _, err := root.Find(args); err == nil {
				m.originalHelp(target, args)
				return
			}
			m.originalHelp(root, args)
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	// cobra re-adds its help command on Execute, so register ours as that one
	root.SetHelpCommand(helpCmd)
	root.AddCommand(helpCmd)

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if topic, ok := m.Get(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), m.Render(topic))
				return
			}
		}
		m.originalHelp(cmd, args)
	})

	return m, nil
}

func (m *Manager) printIndex(cmd *cobra.Command, rootName string) {
	w := cmd.OutOrStdout()

	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var options, general []string
	for _, name := range names {
		if strings.HasPrefix(name, OptionPrefix) {
			options = append(options, strings.TrimPrefix(name, OptionPrefix))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", rootName)
}

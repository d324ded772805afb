package config

import (
	"fmt"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// parseKDL parses a .haystack.kdl config document into a Config,
// starting from the defaults and overriding whatever the file sets.
func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children { // project { root "." name "foo" }
				assignSimpleString(cn, "root", func(v string) { cfg.Project.Root = v })
				assignSimpleString(cn, "name", func(v string) { cfg.Project.Name = v })
			}
		case "limits":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_files":
					if v, ok := firstIntArg(cn); ok {
						cfg.Limits.MaxFiles = v
					}
				case "max_lines_per_file":
					if v, ok := firstIntArg(cn); ok {
						cfg.Limits.MaxLinesPerFile = v
					}
				case "max_search_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Limits.MaxSearchMs = v
					}
					if s, ok := firstStringArg(cn); ok {
						if ms, err := parseDurationMs(s); err == nil {
							cfg.Limits.MaxSearchMs = ms
						}
					}
				case "progress_every":
					if v, ok := firstIntArg(cn); ok {
						cfg.Limits.ProgressEvery = v
					}
				}
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "mode":
					if s, ok := firstStringArg(cn); ok {
						cfg.Search.Mode = s
					}
				case "verbose":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.Verbose = b
					}
				case "respect_gitignore":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.RespectGitignore = b
					}
				case "detect_artifacts":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.DetectArtifacts = b
					}
				}
			}
		case "watch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Watch.Enabled = b
					}
				case "debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Watch.DebounceMs = v
					}
				}
			}
		case "include":
			if patterns := collectStringArgs(n); len(patterns) > 0 {
				cfg.Include = patterns
			}
		case "exclude":
			if patterns := collectStringArgs(n); len(patterns) > 0 {
				cfg.Exclude = append(cfg.Exclude, patterns...)
			}
		}
	}

	return cfg, nil
}

// Helper functions leveraging the kdl-go document model
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	// First try to collect from arguments (for inline format)
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// If no arguments, collect from children (for block format like exclude { "pattern" })
	// In KDL block format, strings are child nodes where the node name is the string value
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}

// parseDurationMs handles duration strings like "10s", "1500ms", "2m"
func parseDurationMs(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	var multiplier int
	var numStr string

	switch {
	case strings.HasSuffix(s, "ms"):
		multiplier = 1
		numStr = strings.TrimSuffix(s, "ms")
	case strings.HasSuffix(s, "s"):
		multiplier = 1000
		numStr = strings.TrimSuffix(s, "s")
	case strings.HasSuffix(s, "m"):
		multiplier = 60 * 1000
		numStr = strings.TrimSuffix(s, "m")
	default:
		multiplier = 1
		numStr = s
	}

	n, err := strconv.Atoi(strings.TrimSpace(numStr))
	if err != nil {
		return 0, err
	}
	return n * multiplier, nil
}

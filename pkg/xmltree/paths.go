package xmltree

import "strings"

// ToAbsolute rewrites a configuration path so every alternative is anchored
// at the document root. "./A/B" and "A/B" both become "/A/B"; an alternation
// "(./A | ./B/@c)" becomes "(/A | /B/@c)".
func ToAbsolute(path string) string {
	return rewrite(path, func(expr string) string {
		return "/" + stripAnchor(expr)
	})
}

// ToRelative rewrites a configuration path so every alternative is anchored
// at the current node. "/A/B" becomes "./A/B".
func ToRelative(path string) string {
	return rewrite(path, func(expr string) string {
		return "./" + stripAnchor(expr)
	})
}

// Alternatives splits a possibly parenthesized alternation into its
// individual expressions. A plain path yields a single-element slice.
func Alternatives(path string) []string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "(") && strings.HasSuffix(path, ")") {
		path = path[1 : len(path)-1]
	}
	parts := strings.Split(path, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsAttribute reports whether the path's final step selects an attribute.
// For alternations it reports on the first alternative; mixed element and
// attribute alternations are resolved per matched node at evaluation time.
func IsAttribute(path string) bool {
	alts := Alternatives(path)
	if len(alts) == 0 {
		return false
	}
	return strings.HasPrefix(lastStep(alts[0]), "@")
}

// SplitAttribute splits a single (non-alternated) attribute path into the
// path of the owning element and the attribute name. ok is false when the
// path does not end in an attribute selector.
func SplitAttribute(path string) (parent, attr string, ok bool) {
	step := lastStep(path)
	if !strings.HasPrefix(step, "@") {
		return "", "", false
	}
	parent = strings.TrimSuffix(path[:len(path)-len(step)], "/")
	if parent == "" || parent == "." {
		parent = "."
	}
	return parent, step[1:], true
}

func rewrite(path string, anchor func(string) string) string {
	alts := Alternatives(path)
	for i, a := range alts {
		alts[i] = anchor(a)
	}
	if len(alts) == 1 {
		return alts[0]
	}
	return "(" + strings.Join(alts, " | ") + ")"
}

func stripAnchor(expr string) string {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimPrefix(expr, ".")
	return strings.TrimPrefix(expr, "/")
}

func lastStep(expr string) string {
	expr = strings.TrimSpace(expr)
	if i := strings.LastIndex(expr, "/"); i >= 0 {
		return expr[i+1:]
	}
	return expr
}

// RelativeTo rewrites an absolute path that extends base into a path
// relative to base. RelativeTo("/A/B/C", "/A/B") yields "./C";
// RelativeTo("/A/B", "/A/B") yields ".".
func RelativeTo(path, base string) string {
	rest := strings.TrimPrefix(ToAbsolute(path), ToAbsolute(base))
	if rest == "" {
		return "."
	}
	return "." + rest
}

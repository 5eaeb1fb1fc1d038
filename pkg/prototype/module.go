package prototype

// Tree is the host's nested content definition table, keyed by category
// then identifier. Values are strings, numbers, nested tables, or lists.
type Tree = map[string]any

// Path is the sequence of keys leading to a node. It is passed by value
// during traversal; visitors may keep a copy without it changing under
// them.
type Path []string

func (p Path) Child(key string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, key)
}

func (p Path) String() string {
	result := ""
	for i, key := range p {
		if i > 0 {
			result += "/"
		}
		result += key
	}
	return result
}

// A StringVisitor receives every string leaf in the tree and returns the
// value that should take its place. Returning the value unchanged leaves
// the leaf alone.
type StringVisitor func(path Path, value string) string

// VisitStrings walks the whole tree and replaces every string leaf with
// the visitor's result. Tables and lists are recursed into; numbers and
// other leaves are left untouched.
func VisitStrings(tree Tree, visit StringVisitor) {
	visitNode(tree, Path{}, visit)
}

func visitNode(node any, path Path, visit StringVisitor) {
	switch value := node.(type) {
	case map[string]any:
		for key, child := range value {
			if leaf, ok := child.(string); ok {
				value[key] = visit(path.Child(key), leaf)
				continue
			}
			visitNode(child, path.Child(key), visit)
		}
	case []any:
		for i, child := range value {
			if leaf, ok := child.(string); ok {
				value[i] = visit(path, leaf)
				continue
			}
			visitNode(child, path, visit)
		}
	}
}

// Number reads a numeric leaf regardless of how the tree decoder typed it.
func Number(value any) (float64, bool) {
	switch number := value.(type) {
	case float64:
		return number, true
	case float32:
		return float64(number), true
	case int:
		return float64(number), true
	case int64:
		return float64(number), true
	}
	return 0, false
}

// ScaleTable multiplies every numeric leaf of the table by factor, so
// threshold tables can be rescaled in lockstep with a color change.
// Integer leaves are promoted to floats.
func ScaleTable(table Tree, factor float64) {
	for key, value := range table {
		if child, ok := value.(map[string]any); ok {
			ScaleTable(child, factor)
			continue
		}
		if number, ok := Number(value); ok {
			table[key] = number * factor
		}
	}
}

package fancy

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"
)

// DependencyTree renders a dependency verification report as a styled tree.
// Installed entries are green, missing ones red, in the given order.
func DependencyTree(installed map[string]bool, order []string) *tree.Tree {
	missing := 0
	for _, name := range order {
		if !installed[name] {
			missing++
		}
	}

	summary := fmt.Sprintf("(%d packages, %d missing)", len(order), missing)
	t := BranchNode("Dependencies", summary)
	t.EnumeratorStyle(BranchStyle)
	t.Enumerator(tree.RoundedEnumerator)

	for _, name := range order {
		if installed[name] {
			t.Child(InstalledText("✓ ") + PackageText(name))
			continue
		}
		t.Child(MissingText("✗ " + name))
	}

	return t
}

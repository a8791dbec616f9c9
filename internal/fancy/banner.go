package fancy

import (
	"fmt"
)

// Banner renders the AURA400 header box shown at the start of a setup run
func Banner(version string) string {
	title := RootStyle.Render("AURA400") + " " + HeaderStyle.Render("Quantum Emotional System")
	sub := InfoStyle.Render(fmt.Sprintf("environment setup %s", version))
	return BannerStyle.Render(title + "\n" + sub)
}

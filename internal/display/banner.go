package display

import (
	"fmt"
	"os"

	"github.com/backmassage/faremeter/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` _____              __  __      _
|  ___|_ _ _ __ ___|  \/  | ___| |_ ___ _ __
| |_ / _`+"`"+` | '__/ _ \ |\/| |/ _ \ __/ _ \ '__|
|  _| (_| | | |  __/ |  | |  __/ ||  __/ |
|_|  \__,_|_|  \___|_|  |_|\___|\__\___|_|
`)
	if logging.Magenta != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}

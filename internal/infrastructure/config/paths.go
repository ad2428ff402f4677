package config

import "os"

// resolveUserConfigDir is a seam for tests; it defaults to the OS user
// config directory (e.g. ~/.config on Linux).
var resolveUserConfigDir = os.UserConfigDir

package contracts

// Defaults holds the directory defaults read from the environment
// (HAPPY_HAPPS_DIR, HAPPY_UIS_DIR, HAPPY_UI_DIR). Flags override them.
type Defaults struct {
	HappsDirectory string `envconfig:"HAPPS_DIR" default:"happs"`
	UIsDirectory   string `envconfig:"UIS_DIR" default:"uis"`
	UIDirectory    string `envconfig:"UI_DIR" default:"ui"`
}

package domain

// SplitCommand splits typed names.
// Names and Exceptions are raw lines, blank ones are ignored.
type SplitCommand struct {
	Names      []string
	Exceptions []string
	TeamCount  int
	Trials     int
	Publish    bool
}

// SplitVoiceCommand splits the members of the configured voice channel.
type SplitVoiceCommand struct {
	Exceptions []string
	TeamCount  int
	Trials     int
}

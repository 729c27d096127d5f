package cli

// NewApp exposes the command tree with a custom output writer
var NewApp = newApp

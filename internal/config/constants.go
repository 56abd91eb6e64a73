package config

// Base application details
const AppName = "tidemark"
const DefaultConfigFileName = "config.toml"
const DefaultStylesFileName = "styles.toml"

// History
const DefaultMaxHistory = 100
const CoalesceTyping = true

// Shortcuts
const DefaultTriggerKey = "space"
const ShortcutsEnabled = true

const SystemClipboard = true

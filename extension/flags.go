// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "no-imports" -> FlagNoImports).

package extension

// Flag name constants for CLI commands.
// These are used with cobra's Flags().Type() and GetType() methods.
const (
	// Boolean flags

	FlagColour    = "colour"     // Force coloured output
	FlagLocal     = "local"      // Use local scope (per-project)
	FlagNoImports = "no-imports" // Skip import directive processing
	FlagRaw       = "raw"        // Raw output without formatting
	FlagStrict    = "strict"     // Non-zero exit when any import fails

	// String flags

	FlagAllow = "allow" // Additional allowed directory (repeatable)
	FlagTheme = "theme" // Rendering theme for preview

	// Integer flags

	FlagMaxDepth = "max-depth" // Maximum import recursion depth
)

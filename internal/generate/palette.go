// Package generate implements the deterministic page and layout generator:
// regex intent classification over free-text prompts, one-pass vertical
// stack layout, checksum-based palette selection, and the page builders
// with first-seen-wins deduplication. It produces complete page sets with
// zero external dependencies and is the system of record for correctness;
// the LLM path is an optional content source feeding the same tree format.
package generate

// Palette is one background choice for a generated page.
type Palette struct {
	Background string
	Accent     string
	Text       string
}

// palettes is the fixed selection pool. Order matters: the checksum pick
// indexes into it, so reordering changes which prompt maps to which
// background.
var palettes = []Palette{
	{Background: "linear-gradient(160deg,#1e3a8a,#3b82f6)", Accent: "#93c5fd", Text: "#f8fafc"},
	{Background: "linear-gradient(160deg,#064e3b,#10b981)", Accent: "#6ee7b7", Text: "#f0fdf4"},
	{Background: "linear-gradient(160deg,#7c2d12,#f97316)", Accent: "#fdba74", Text: "#fff7ed"},
	{Background: "linear-gradient(160deg,#4c1d95,#8b5cf6)", Accent: "#c4b5fd", Text: "#f5f3ff"},
	{Background: "linear-gradient(160deg,#831843,#ec4899)", Accent: "#f9a8d4", Text: "#fdf2f8"},
	{Background: "linear-gradient(160deg,#134e4a,#14b8a6)", Accent: "#5eead4", Text: "#f0fdfa"},
	{Background: "linear-gradient(160deg,#1f2937,#6b7280)", Accent: "#d1d5db", Text: "#f9fafb"},
	{Background: "linear-gradient(160deg,#713f12,#eab308)", Accent: "#fde047", Text: "#fefce8"},
}

// PickPalette deterministically selects a palette for a seed string by
// summing its byte values modulo the palette count. The same seed always
// yields the same background; seeds whose sums differ by a multiple of
// the palette count collide. An empty seed falls back to the first palette.
func PickPalette(seed string) Palette {
	if seed == "" {
		return palettes[0]
	}
	sum := 0
	for _, b := range []byte(seed) {
		sum += int(b)
	}
	return palettes[sum%len(palettes)]
}

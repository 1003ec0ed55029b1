package rewrite

// opacityClasses maps Tailwind slash-opacity classes to arbitrary rgba
// values.
var opacityClasses = []Replacement{
	// White/Black
	{"bg-white/5", "bg-[rgba(255,255,255,0.05)]"},
	{"bg-white/10", "bg-[rgba(255,255,255,0.1)]"},
	{"border-white/5", "border-[rgba(255,255,255,0.05)]"},
	{"border-white/10", "border-[rgba(255,255,255,0.1)]"},
	{"divide-white/5", "divide-[rgba(255,255,255,0.05)]"},
	{"bg-black/20", "bg-[rgba(0,0,0,0.2)]"},
	{"bg-black/30", "bg-[rgba(0,0,0,0.3)]"},
	{"bg-black/40", "bg-[rgba(0,0,0,0.4)]"},
	{"bg-black/50", "bg-[rgba(0,0,0,0.5)]"},
	{"text-white/10", "text-[rgba(255,255,255,0.1)]"},
	{"text-white/40", "text-[rgba(255,255,255,0.4)]"},

	// Hover
	{"hover:bg-white/5", "hover:bg-[rgba(255,255,255,0.05)]"},
	{"hover:bg-white/10", "hover:bg-[rgba(255,255,255,0.1)]"},

	// Colored
	{"bg-rose-900/5", "bg-[rgba(136,19,55,0.05)]"},
	{"bg-rose-900/10", "bg-[rgba(136,19,55,0.1)]"},
	{"bg-rose-900/20", "bg-[rgba(136,19,55,0.2)]"},
	{"text-rose-400/70", "text-[rgba(251,113,133,0.7)]"},
	{"border-rose-500/20", "border-[rgba(244,63,94,0.2)]"},
	{"border-rose-500/30", "border-[rgba(244,63,94,0.3)]"},

	{"bg-indigo-600/20", "bg-[rgba(79,70,229,0.2)]"},
	{"bg-indigo-500/10", "bg-[rgba(99,102,241,0.1)]"},
	{"bg-indigo-500/20", "bg-[rgba(99,102,241,0.2)]"},
	{"border-indigo-500/20", "border-[rgba(99,102,241,0.2)]"},

	{"bg-amber-500/20", "bg-[rgba(245,158,11,0.2)]"},
	{"border-amber-500/30", "border-[rgba(245,158,11,0.3)]"},

	{"bg-emerald-900/90", "bg-[rgba(6,78,59,0.9)]"},
	{"bg-teal-900/90", "bg-[rgba(19,78,74,0.9)]"},
	{"bg-indigo-900/90", "bg-[rgba(49,46,129,0.9)]"},
	{"bg-purple-900/90", "bg-[rgba(88,28,135,0.9)]"},

	// Shadow borders
	{"border-emerald-500/40", "border-[rgba(16,185,129,0.4)]"},
	{"border-indigo-500/40", "border-[rgba(99,102,241,0.4)]"},
}

// DefaultTable returns the built-in opacity class table.
func DefaultTable() *Table {
	t, err := NewTable(opacityClasses)
	if err != nil {
		panic(err)
	}
	return t
}

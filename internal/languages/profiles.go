package languages

// BlockMarkers 是块注释的起止标记。
type BlockMarkers struct {
	Open  string
	Close string
}

// CommentProfile 描述一种语言的注释语法。
//
// Supported 为 false 时分类器不做任何注释识别，
// 非空行全部计为 source，宽容模式下的未知后缀使用这种配置。
type CommentProfile struct {
	Name       string
	Extensions []string
	Filenames  []string
	// LineMarker 为空表示该语言没有单行注释。
	LineMarker string
	// Block 为 nil 表示该语言没有块注释。
	Block *BlockMarkers
	// Quotes 列出字符串字面量的定界符，字面量内的注释标记会被忽略。
	Quotes    string
	Supported bool
	// Note 是展示给用户的已知限制说明。
	Note string
}

func cStyle(name string, quotes string, extensions ...string) CommentProfile {
	return CommentProfile{
		Name:       name,
		Extensions: extensions,
		LineMarker: "//",
		Block:      &BlockMarkers{Open: "/*", Close: "*/"},
		Quotes:     quotes,
		Supported:  true,
	}
}

func lineOnly(name string, marker string, quotes string, extensions ...string) CommentProfile {
	return CommentProfile{
		Name:       name,
		Extensions: extensions,
		LineMarker: marker,
		Quotes:     quotes,
		Supported:  true,
	}
}

func blockOnly(name string, open string, close string, quotes string, extensions ...string) CommentProfile {
	return CommentProfile{
		Name:       name,
		Extensions: extensions,
		Block:      &BlockMarkers{Open: open, Close: close},
		Quotes:     quotes,
		Supported:  true,
	}
}

// builtinProfiles 是内置的语言注释语法表。
//
// Lua 的 --[[ ]] 与单行标记同位置起始，单行标记优先，
// 因此这里只登记 --。Rust 的 ' 常用于生命周期，不作为引号。
func builtinProfiles() []CommentProfile {
	withFilenames := func(profile CommentProfile, filenames ...string) CommentProfile {
		profile.Filenames = filenames
		return profile
	}
	withNote := func(profile CommentProfile, note string) CommentProfile {
		profile.Note = note
		return profile
	}

	return []CommentProfile{
		cStyle("C/C++", `"'`, ".c", ".cc", ".cpp", ".cxx", ".h", ".hh", ".hpp", ".hxx"),
		cStyle("C#", `"'`, ".cs"),
		cStyle("Go", "\"'`", ".go"),
		cStyle("Java", `"'`, ".java"),
		cStyle("Kotlin", `"'`, ".kt", ".kts"),
		cStyle("Scala", `"'`, ".scala"),
		cStyle("Swift", `"`, ".swift"),
		cStyle("Dart", "\"'", ".dart"),
		cStyle("JavaScript", "\"'`", ".js", ".mjs", ".cjs", ".jsx"),
		cStyle("TypeScript", "\"'`", ".ts", ".mts", ".cts", ".tsx"),
		cStyle("Rust", `"`, ".rs"),
		cStyle("PHP", `"'`, ".php"),
		cStyle("Less/SCSS", `"'`, ".less", ".scss"),
		cStyle("Protocol Buffers", `"'`, ".proto"),
		blockOnly("CSS", "/*", "*/", `"'`, ".css"),
		blockOnly("HTML", "<!--", "-->", "", ".html", ".htm", ".xhtml", ".vue"),
		blockOnly("XML", "<!--", "-->", "", ".xml", ".xsd", ".xsl", ".svg"),
		lineOnly("Python", "#", `"'`, ".py", ".pyw"),
		lineOnly("Ruby", "#", `"'`, ".rb", ".rake", ".gemspec"),
		withFilenames(lineOnly("Shell", "#", `"'`, ".sh", ".bash", ".zsh"), ".bashrc", ".zshrc"),
		lineOnly("Perl", "#", `"'`, ".pl", ".pm"),
		lineOnly("R", "#", `"'`, ".r"),
		lineOnly("CoffeeScript", "#", `"'`, ".coffee"),
		lineOnly("YAML", "#", `"'`, ".yml", ".yaml"),
		lineOnly("TOML", "#", `"'`, ".toml"),
		withFilenames(lineOnly("Makefile", "#", `"'`, ".mk"), "makefile", "gnumakefile"),
		withFilenames(lineOnly("Dockerfile", "#", `"'`, ".dockerfile"), "dockerfile"),
		{
			Name:       "SQL",
			Extensions: []string{".sql"},
			LineMarker: "--",
			Block:      &BlockMarkers{Open: "/*", Close: "*/"},
			Quotes:     `"'`,
			Supported:  true,
		},
		{
			Name:       "Haskell",
			Extensions: []string{".hs"},
			LineMarker: "--",
			Block:      &BlockMarkers{Open: "{-", Close: "-}"},
			Quotes:     `"`,
			Supported:  true,
		},
		withNote(lineOnly("Lua", "--", `"'`, ".lua"),
			"--[[ ]] 块注释只有首行计为注释，其余行计为代码"),
		lineOnly("Lisp", ";", `"`, ".lisp", ".lsp", ".el", ".clj", ".cljs", ".scm"),
		lineOnly("Erlang", "%", `"`, ".erl", ".hrl"),
		lineOnly("TeX", "%", "", ".tex", ".sty"),
	}
}

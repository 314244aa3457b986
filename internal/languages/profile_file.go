package languages

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// profileFile 是用户自定义语言配置文件的结构。
//
// 示例：
//
//	profiles:
//	  - name: Jsonnet
//	    extensions: [".jsonnet", ".libsonnet"]
//	    line: "//"
//	    block: {open: "/*", close: "*/"}
//	    quotes: "\"'"
type profileFile struct {
	Profiles []profileEntry `yaml:"profiles"`
}

type profileEntry struct {
	Name       string        `yaml:"name"`
	Extensions []string      `yaml:"extensions"`
	Filenames  []string      `yaml:"filenames,omitempty"`
	Line       string        `yaml:"line,omitempty"`
	Block      *blockMarkers `yaml:"block,omitempty"`
	Quotes     string        `yaml:"quotes,omitempty"`
}

type blockMarkers struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// LoadProfiles 从 YAML 文件读取额外的语言配置。
func LoadProfiles(path string) ([]CommentProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	profiles, err := DecodeProfiles(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// DecodeProfiles 解析 YAML 语言配置，未知字段直接报错。
func DecodeProfiles(reader io.Reader) ([]CommentProfile, error) {
	var file profileFile
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	profiles := make([]CommentProfile, 0, len(file.Profiles))
	for idx, entry := range file.Profiles {
		profile, err := entry.toProfile()
		if err != nil {
			return nil, fmt.Errorf("profile #%d: %w", idx+1, err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (e profileEntry) toProfile() (CommentProfile, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return CommentProfile{}, errors.New("name is required")
	}
	if len(e.Extensions) == 0 && len(e.Filenames) == 0 {
		return CommentProfile{}, fmt.Errorf("%s: at least one extension or filename is required", name)
	}

	profile := CommentProfile{
		Name:       name,
		LineMarker: e.Line,
		Quotes:     e.Quotes,
		Supported:  true,
	}

	for _, ext := range e.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		profile.Extensions = append(profile.Extensions, ext)
	}
	for _, filename := range e.Filenames {
		if filename = strings.TrimSpace(filename); filename != "" {
			profile.Filenames = append(profile.Filenames, filename)
		}
	}

	if e.Block != nil {
		if e.Block.Open == "" || e.Block.Close == "" {
			return CommentProfile{}, fmt.Errorf("%s: block comment needs both open and close markers", name)
		}
		profile.Block = &BlockMarkers{Open: e.Block.Open, Close: e.Block.Close}
	}

	return profile, nil
}

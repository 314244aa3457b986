package languages

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// UnknownLanguage 是无法识别语言时使用的名称。
const UnknownLanguage = "Unknown"

// LanguageDescriptor 用于对外展示语言及后缀信息。
type LanguageDescriptor struct {
	Name       string
	Extensions []string
	LineMarker string
	Block      *BlockMarkers
	Note       string
}

// Registry 管理后缀到注释语法的映射。
// 构造完成后只读，可以被多个流水线并发使用。
type Registry struct {
	profiles       []CommentProfile
	profileByExt   map[string]CommentProfile
	profileByFname map[string]CommentProfile
}

// NewRegistry 创建注册中心，extra 中同名的配置会覆盖内置配置，
// 后登记的后缀覆盖先登记的后缀。
func NewRegistry(extra ...CommentProfile) *Registry {
	profiles := builtinProfiles()

	for _, profile := range extra {
		replaced := false
		for idx := range profiles {
			if strings.EqualFold(profiles[idx].Name, profile.Name) {
				profiles[idx] = profile
				replaced = true
				break
			}
		}
		if !replaced {
			profiles = append(profiles, profile)
		}
	}

	registry := &Registry{
		profiles:       profiles,
		profileByExt:   make(map[string]CommentProfile),
		profileByFname: make(map[string]CommentProfile),
	}

	for _, profile := range profiles {
		for _, ext := range profile.Extensions {
			registry.profileByExt[strings.ToLower(ext)] = profile
		}
		for _, name := range profile.Filenames {
			registry.profileByFname[strings.ToLower(name)] = profile
		}
	}

	return registry
}

// Lookup 根据文件名或后缀（大小写不敏感）查找已登记的配置。
func (r *Registry) Lookup(path string) (CommentProfile, bool) {
	base := strings.ToLower(filepath.Base(path))
	if profile, ok := r.profileByFname[base]; ok {
		return profile, true
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return CommentProfile{}, false
	}
	profile, ok := r.profileByExt[ext]
	return profile, ok
}

// Resolve 为文件选择注释语法。
//
// 已知后缀在两种模式下都返回登记的配置；
// 未知后缀在严格模式下返回 false（文件被跳过），
// 在宽容模式下返回不识别注释的兜底配置。
func (r *Registry) Resolve(path string, strict bool) (CommentProfile, bool) {
	if profile, ok := r.Lookup(path); ok {
		return profile, true
	}
	if strict {
		return CommentProfile{}, false
	}
	return fallbackProfile(path), true
}

// fallbackProfile 构造宽容模式下的兜底配置，语言名由 enry 按后缀推断。
func fallbackProfile(path string) CommentProfile {
	name, _ := enry.GetLanguageByExtension(path)
	if name == "" {
		name = UnknownLanguage
	}
	return CommentProfile{Name: name, Supported: false}
}

// Languages 返回已注册语言清单。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.profiles))
	for _, profile := range r.profiles {
		extensions := append([]string(nil), profile.Extensions...)
		extensions = append(extensions, profile.Filenames...)
		sort.Strings(extensions)
		result = append(result, LanguageDescriptor{
			Name:       profile.Name,
			Extensions: extensions,
			LineMarker: profile.LineMarker,
			Block:      profile.Block,
			Note:       profile.Note,
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

package languages

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"gosloc/internal/model"
)

// Classify 对一个文件的完整文本做逐行分类。
// 分类本身不会失败，未闭合的块注释会把剩余非空行都计为 block。
func Classify(path string, text string, profile CommentProfile) model.FileResult {
	// strings.Reader 不会返回非 EOF 错误。
	result, _ := ClassifyReader(path, strings.NewReader(text), profile)
	return result
}

// ClassifyReader 以流式方式读取并分类，只会返回底层 reader 的读取错误。
func ClassifyReader(path string, reader io.Reader, profile CommentProfile) (model.FileResult, error) {
	engine := &classifierEngine{profile: profile}
	return engine.analyze(path, reader)
}

// classifierEngine 维护单个文件内跨行的块注释状态。
type classifierEngine struct {
	profile        CommentProfile
	inBlockComment bool
}

// analyze 逐行处理输入流。
func (e *classifierEngine) analyze(path string, reader io.Reader) (model.FileResult, error) {
	result := model.FileResult{Path: path, Language: e.profile.Name}

	bufferedReader := bufio.NewReader(reader)

	for {
		line, err := bufferedReader.ReadString('\n')
		// 没有残留字符的 EOF 说明读取完成，末尾换行不会产生额外的空行。
		if errors.Is(err, io.EOF) && len(line) == 0 {
			break
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return result, err
		}

		category := e.classifyLine(normalizeLine(line))
		result.Lines = append(result.Lines, category)
		result.Record(category)

		// 最后一行即使没有换行，也已完成统计。
		if errors.Is(err, io.EOF) {
			break
		}
	}

	return result, nil
}

// classifyLine 判定单行分类。
//
// 规则：
// - 空白行总是 empty，块注释状态保持不变
// - 同时出现代码与注释记为 mixed
// - 只有注释时，以本行第一个注释的类型为准
func (e *classifierEngine) classifyLine(line string) model.LineCategory {
	if isBlank(line) {
		return model.CategoryEmpty
	}
	if !e.profile.Supported {
		return model.CategorySource
	}

	lineMarker := e.profile.LineMarker
	var block BlockMarkers
	if e.profile.Block != nil {
		block = *e.profile.Block
	}

	hasCode := false
	hasComment := false
	startsWithSingle := false
	var quote rune

	for idx := 0; idx < len(line); {
		rest := line[idx:]
		current, size := utf8.DecodeRuneInString(rest)

		if e.inBlockComment {
			hasComment = true
			if strings.HasPrefix(rest, block.Close) {
				e.inBlockComment = false
				idx += len(block.Close)
				continue
			}
			idx += size
			continue
		}

		if quote != 0 {
			hasCode = true
			// 字符串里的转义字符优先消费，避免误识别结束引号。
			if current == '\\' {
				idx += size
				if idx < len(line) {
					_, next := utf8.DecodeRuneInString(line[idx:])
					idx += next
				}
				continue
			}
			if current == quote {
				quote = 0
			}
			idx += size
			continue
		}

		if unicode.IsSpace(current) {
			idx += size
			continue
		}

		// 转义的字符不会开启注释，例如 shell 中的 \#。
		if current == '\\' {
			hasCode = true
			idx += size
			if idx < len(line) {
				_, next := utf8.DecodeRuneInString(line[idx:])
				idx += next
			}
			continue
		}

		// 两种标记在同一位置起始时单行标记优先。
		if lineMarker != "" && strings.HasPrefix(rest, lineMarker) {
			if !hasComment {
				startsWithSingle = true
			}
			hasComment = true
			break
		}

		if block.Open != "" && strings.HasPrefix(rest, block.Open) {
			hasComment = true
			e.inBlockComment = true
			idx += len(block.Open)
			continue
		}

		if strings.ContainsRune(e.profile.Quotes, current) {
			hasCode = true
			quote = current
			idx += size
			continue
		}

		hasCode = true
		idx += size
	}

	switch {
	case hasCode && hasComment:
		return model.CategoryCommentMixed
	case hasComment && startsWithSingle:
		return model.CategoryCommentSingle
	case hasComment:
		return model.CategoryCommentBlock
	default:
		return model.CategorySource
	}
}

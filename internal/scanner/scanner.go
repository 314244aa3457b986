// Package scanner 负责把磁盘上的文件送入统计流水线。
// 该层只做目录遍历、.gitignore 过滤和并发读取，不负责分类与语言判断。
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	gitignore "github.com/monochromegane/go-gitignore"

	"gosloc/internal/model"
)

// Service 是扫描服务对象。
type Service struct {
	workers       int
	respectIgnore bool
	logger        *slog.Logger
}

// Option 调整 Service 的行为。
type Option func(*Service)

// WithIgnoreFiles 控制是否读取目录根部的 .gitignore。
func WithIgnoreFiles(enabled bool) Option {
	return func(s *Service) {
		s.respectIgnore = enabled
	}
}

// WithLogger 设置日志输出。
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// readTask 表示一个待读取文件。
type readTask struct {
	absolutePath string
	displayPath  string
}

// NewService 创建扫描服务。
func NewService(workers int, opts ...Option) *Service {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	service := &Service{
		workers:       workers,
		respectIgnore: true,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Stream 遍历全部路径并把文件内容送入 files 通道。
//
// 读取失败的文件进入 readErrors 通道，不会中断扫描；
// 路径本身不存在等致命错误在 walkErr 通道中返回一次。
// 三个通道都会在扫描结束后关闭，ctx 取消时尽快停止。
func (s *Service) Stream(ctx context.Context, paths []string) (<-chan model.SourceFile, <-chan model.ReadError, <-chan error) {
	files := make(chan model.SourceFile, s.workers*4)
	readErrors := make(chan model.ReadError, s.workers*4)
	walkErrChan := make(chan error, 1)

	tasks := make(chan readTask, s.workers*4)

	var workerGroup sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			s.runWorker(ctx, tasks, files, readErrors)
		}()
	}

	go func() {
		defer close(walkErrChan)
		defer close(tasks)
		for _, target := range paths {
			if err := s.enqueuePath(ctx, target, tasks); err != nil {
				walkErrChan <- err
				return
			}
		}
	}()

	go func() {
		workerGroup.Wait()
		close(files)
		close(readErrors)
	}()

	return files, readErrors, walkErrChan
}

// enqueuePath 处理单个命令行路径：目录递归遍历，文件直接入队。
func (s *Service) enqueuePath(ctx context.Context, targetPath string, tasks chan<- readTask) error {
	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return errors.New("scan path is empty")
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return fmt.Errorf("stat path: %w", err)
	}

	if info.IsDir() {
		return s.enqueueDirectoryTasks(ctx, absoluteTarget, tasks)
	}
	return send(ctx, tasks, readTask{
		absolutePath: absoluteTarget,
		displayPath:  filepath.ToSlash(trimmedPath),
	})
}

// enqueueDirectoryTasks 遍历目录并把文件推入任务队列。
// 是否统计某个后缀由流水线的严格/宽容模式决定，这里不做过滤。
func (s *Service) enqueueDirectoryTasks(ctx context.Context, root string, tasks chan<- readTask) error {
	matcher := s.loadIgnore(root)

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if entry.IsDir() {
			if path != root && (entry.Name() == ".git" || ignored(matcher, path, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || ignored(matcher, path, false) {
			return nil
		}

		relativePath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relativePath = path
		}

		return send(ctx, tasks, readTask{
			absolutePath: path,
			displayPath:  filepath.ToSlash(relativePath),
		})
	})
}

// loadIgnore 读取目录根部的 .gitignore，不存在或解析失败时返回 nil。
func (s *Service) loadIgnore(root string) gitignore.IgnoreMatcher {
	if !s.respectIgnore {
		return nil
	}

	ignorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(ignorePath); err != nil {
		return nil
	}

	matcher, err := gitignore.NewGitIgnore(ignorePath, root)
	if err != nil {
		s.logger.Warn("could not parse .gitignore", "path", ignorePath, "error", err)
		return nil
	}
	return matcher
}

func ignored(matcher gitignore.IgnoreMatcher, path string, isDir bool) bool {
	return matcher != nil && matcher.Match(path, isDir)
}

func send(ctx context.Context, tasks chan<- readTask, task readTask) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case tasks <- task:
		return nil
	}
}

// runWorker 读取文件内容并交给下游。
func (s *Service) runWorker(ctx context.Context, tasks <-chan readTask, files chan<- model.SourceFile, readErrors chan<- model.ReadError) {
	for task := range tasks {
		contents, err := os.ReadFile(task.absolutePath)
		if err != nil {
			s.logger.Warn("read failed", "path", task.displayPath, "error", err)
			select {
			case readErrors <- model.ReadError{Path: task.displayPath, Error: err.Error()}:
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case files <- model.SourceFile{Path: task.displayPath, Contents: contents}:
		case <-ctx.Done():
			return
		}
	}
}

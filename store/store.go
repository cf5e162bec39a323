// Package store persists comments as json files below the comments
// directory of a site, one directory per page.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hugocs/hugocs/comment"
	"github.com/hugocs/hugocs/schema"
)

var (
	ErrInvalidPath = errors.New("comment path escapes the comments directory")
	ErrNameTaken   = errors.New("no free comment file name")
)

// maxNameAttempts bounds the numbered variants tried for a file name.
const maxNameAttempts = 100

type Params struct {
	fx.In

	Config Config
	Log    *zap.Logger
}

// FileStore writes comments to the filesystem.
type FileStore struct {
	config Config
	log    *zap.Logger
}

func NewFileStore(params Params) *FileStore {
	return &FileStore{
		config: params.Config,
		log:    params.Log.Named("store"),
	}
}

// PostExists reports whether the content file <pageID>.<ext> exists.
func (s *FileStore) PostExists(pageID string, ext string) bool {
	_, err := os.Stat(filepath.Join(s.config.ContentDir(), pageID+"."+ext))
	return err == nil
}

// Save writes c to <comments>/<page id>/<filename> and returns the path
// of the written file.
func (s *FileStore) Save(ctx context.Context, c comment.Comment) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("error encoding comment: %w", err)
	}

	if err := schema.Comment().Validate(data); err != nil {
		return "", err
	}

	root := s.config.CommentsDir()
	dir := filepath.Join(root, c.PageID)
	if !within(root, dir) {
		return "", ErrInvalidPath
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("error creating comment directory: %w", err)
	}

	path, err := writeNew(dir, c.Filename(), data)
	if err != nil {
		return "", fmt.Errorf("error writing comment: %w", err)
	}

	log := s.log.With(zap.String("path", path))
	log.Info("comment saved")

	if touch := s.config.TouchFile(); touch != "" {
		if err := os.WriteFile(touch, []byte("."), 0600); err != nil {
			// the comment is stored, a stale touch file only delays a rebuild
			log.Warn("failed to update touch file", zap.String("touch", touch), zap.Error(err))
		}
	}

	return path, nil
}

// writeNew writes data to a file in dir that did not exist before. If
// name is taken, name-2, name-3 and so on are tried, keeping the
// extension.
func writeNew(dir, name string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	for i := 1; i <= maxNameAttempts; i++ {
		candidate := name
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
		}

		path := filepath.Join(dir, candidate)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}

		if _, err := file.Write(data); err != nil {
			file.Close()
			return "", err
		}

		return path, file.Close()
	}

	return "", ErrNameTaken
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

// ErrNotFound は指定 ID のプロジェクトが存在しないことを表します。
var ErrNotFound = errors.New("プロジェクトが見つかりません")

// Store はプロジェクトの永続化インターフェースです。
type Store interface {
	Save(p *domain.Project) error
	Load(id string) (*domain.Project, error)
	Delete(id string) error
	List() ([]string, error)
}

const projectCacheTTL = 5 * time.Minute

// FileStore はプロジェクトを 1 件 1 JSON ファイルでディスクに保存します。
// 保存は一時ファイルへの書き出しとリネームで行い、途中失敗で既存レコードが
// 壊れないようにします。読み出しはマイグレーションを通してから返します。
type FileStore struct {
	dir   string
	cache *gocache.Cache
}

// NewFileStore は保存先ディレクトリを作成して FileStore を返します。
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("保存ディレクトリの作成に失敗しました: %w", err)
	}
	return &FileStore{
		dir:   dir,
		cache: gocache.New(projectCacheTTL, projectCacheTTL),
	}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save はプロジェクトをアトミックに書き出します。
func (s *FileStore) Save(p *domain.Project) error {
	if p.ID == "" {
		return fmt.Errorf("プロジェクト ID が空です")
	}
	p.SchemaVersion = domain.CurrentSchemaVersion

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("プロジェクトのシリアライズに失敗しました: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, p.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("一時ファイルの作成に失敗しました: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("プロジェクトの書き込みに失敗しました: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("一時ファイルのクローズに失敗しました: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(p.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("プロジェクトの保存に失敗しました: %w", err)
	}

	s.cache.Delete(p.ID)
	slog.Info("プロジェクトを保存したのだ", "id", p.ID, "units", len(p.Units))
	return nil
}

// Load はプロジェクトを読み出し、スキーマを現行世代へ引き上げて返します。
// 直近ロード分はキャッシュされます。キャッシュヒットでも呼び出し側の編集が
// 他の呼び出しへ波及しないよう、JSON 経由のコピーを返します。
func (s *FileStore) Load(id string) (*domain.Project, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cloneProject(cached.(*domain.Project))
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("プロジェクトの読み込みに失敗しました: %w", err)
	}

	p := &domain.Project{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("プロジェクト %s のパースに失敗しました: %w", id, err)
	}
	p.Migrate()

	s.cache.Set(id, p, gocache.DefaultExpiration)
	return cloneProject(p)
}

// Delete はレコードを取り除きます。存在しない ID は ErrNotFound です。
func (s *FileStore) Delete(id string) error {
	if err := os.Remove(s.path(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("プロジェクトの削除に失敗しました: %w", err)
	}
	s.cache.Delete(id)
	return nil
}

// List は保存済みプロジェクト ID を辞書順で返します。
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("保存ディレクトリの列挙に失敗しました: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// MemoryStore はディスクが使えない環境向けのフォールバック実装です。
// プロセスを跨いだ永続性はありません。
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string][]byte
}

// NewMemoryStore は空のインメモリストアを返します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: map[string][]byte{}}
}

// Save は JSON 化したスナップショットを保持します。参照共有を避けるため
// バイト列で持ちます。
func (m *MemoryStore) Save(p *domain.Project) error {
	if p.ID == "" {
		return fmt.Errorf("プロジェクト ID が空です")
	}
	p.SchemaVersion = domain.CurrentSchemaVersion
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("プロジェクトのシリアライズに失敗しました: %w", err)
	}
	m.mu.Lock()
	m.projects[p.ID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(id string) (*domain.Project, error) {
	m.mu.RLock()
	data, ok := m.projects[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p := &domain.Project{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("プロジェクト %s のパースに失敗しました: %w", id, err)
	}
	p.Migrate()
	return p, nil
}

func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.projects, id)
	return nil
}

func (m *MemoryStore) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.projects))
	for id := range m.projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// OpenStore はディレクトリ指定ありなら FileStore を試し、失敗時は
// MemoryStore へ格下げします。起動自体は止めません。
func OpenStore(dir string) Store {
	if dir != "" {
		fs, err := NewFileStore(dir)
		if err == nil {
			return fs
		}
		slog.Warn("ファイルストアを開けないためインメモリへ格下げするのだ", "dir", dir, "error", err)
	}
	return NewMemoryStore()
}

func cloneProject(p *domain.Project) (*domain.Project, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("プロジェクトの複製に失敗しました: %w", err)
	}
	out := &domain.Project{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("プロジェクトの複製に失敗しました: %w", err)
	}
	return out, nil
}

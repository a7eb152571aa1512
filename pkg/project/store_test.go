package project

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

func testProject(t *testing.T, id string) *domain.Project {
	t.Helper()
	p := domain.NewProject(id, "テスト")

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("テスト画像のエンコードに失敗しました: %v", err)
	}
	asset, err := domain.NewRasterAsset(buf.Bytes(), "app_en.png")
	if err != nil {
		t.Fatalf("テストアセットの生成に失敗しました: %v", err)
	}
	p.AddUnit(asset, "en")
	return p
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("ストアの作成に失敗しました: %v", err)
	}

	p := testProject(t, "round-trip")
	p.Units[0].Text.Headlines["en"] = "Hello"
	p.Units[0].Background.Solid = "#abcdef"

	if err := store.Save(p); err != nil {
		t.Fatalf("保存に失敗しました: %v", err)
	}

	loaded, err := store.Load("round-trip")
	if err != nil {
		t.Fatalf("読み込みに失敗しました: %v", err)
	}

	if loaded.Units[0].Text.Headlines["en"] != "Hello" {
		t.Errorf("見出しが失われました: %q", loaded.Units[0].Text.Headlines["en"])
	}
	if loaded.Units[0].Background.Solid != "#abcdef" {
		t.Errorf("背景色が失われました: %q", loaded.Units[0].Background.Solid)
	}
	if !bytes.Equal(loaded.Units[0].LocalizedImages["en"].Data, p.Units[0].LocalizedImages["en"].Data) {
		t.Error("画像バイト列が往復で変化しました")
	}
}

func TestFileStoreLoadIsolation(t *testing.T) {
	// キャッシュ経由でも呼び出し側の編集が次のロードへ波及しないこと
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("ストアの作成に失敗しました: %v", err)
	}
	if err := store.Save(testProject(t, "iso")); err != nil {
		t.Fatalf("保存に失敗しました: %v", err)
	}

	first, err := store.Load("iso")
	if err != nil {
		t.Fatalf("読み込みに失敗しました: %v", err)
	}
	first.Units[0].Text.Headlines["en"] = "勝手な編集"

	second, err := store.Load("iso")
	if err != nil {
		t.Fatalf("読み込みに失敗しました: %v", err)
	}
	if second.Units[0].Text.Headlines["en"] == "勝手な編集" {
		t.Error("ロード結果が共有されています")
	}
}

func TestFileStoreLegacyMigrationOnLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("ストアの作成に失敗しました: %v", err)
	}

	// 旧スキーマの JSON を直接配置する
	legacy := []byte(`{
		"id": "legacy",
		"schema_version": 1,
		"units": [
			{"text": {"headline_enabled": true, "headline": "旧見出し"}}
		]
	}`)
	if err := os.WriteFile(filepath.Join(dir, "legacy.json"), legacy, 0o644); err != nil {
		t.Fatalf("旧レコードの配置に失敗しました: %v", err)
	}

	p, err := store.Load("legacy")
	if err != nil {
		t.Fatalf("読み込みに失敗しました: %v", err)
	}
	if p.SchemaVersion != domain.CurrentSchemaVersion {
		t.Errorf("スキーマが移行されていません: %d", p.SchemaVersion)
	}
	if p.Units[0].Text.Headlines[domain.DefaultLanguage] != "旧見出し" {
		t.Errorf("旧見出しが移行されていません: %v", p.Units[0].Text.Headlines)
	}
}

func TestFileStoreDeleteAndList(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("ストアの作成に失敗しました: %v", err)
	}

	if err := store.Save(testProject(t, "b")); err != nil {
		t.Fatalf("保存に失敗しました: %v", err)
	}
	if err := store.Save(testProject(t, "a")); err != nil {
		t.Fatalf("保存に失敗しました: %v", err)
	}

	t.Run("一覧が辞書順で返ること", func(t *testing.T) {
		ids, err := store.List()
		if err != nil {
			t.Fatalf("一覧の取得に失敗しました: %v", err)
		}
		if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
			t.Errorf("期待値 [a b], 実際の値 %v", ids)
		}
	})

	t.Run("削除後は ErrNotFound になること", func(t *testing.T) {
		if err := store.Delete("a"); err != nil {
			t.Fatalf("削除に失敗しました: %v", err)
		}
		if _, err := store.Load("a"); !errors.Is(err, ErrNotFound) {
			t.Errorf("期待値 ErrNotFound, 実際の値 %v", err)
		}
		if err := store.Delete("a"); !errors.Is(err, ErrNotFound) {
			t.Errorf("二重削除: 期待値 ErrNotFound, 実際の値 %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	p := testProject(t, "mem")
	if err := store.Save(p); err != nil {
		t.Fatalf("保存に失敗しました: %v", err)
	}

	loaded, err := store.Load("mem")
	if err != nil {
		t.Fatalf("読み込みに失敗しました: %v", err)
	}
	if loaded.ID != "mem" || len(loaded.Units) != 1 {
		t.Errorf("復元結果が不正です: %+v", loaded)
	}

	// スナップショット保存なので後からの編集は反映されないこと
	p.Name = "編集後"
	reloaded, _ := store.Load("mem")
	if reloaded.Name == "編集後" {
		t.Error("保存後の編集がストアへ波及しました")
	}

	if _, err := store.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("期待値 ErrNotFound, 実際の値 %v", err)
	}
}

func TestOpenStoreFallback(t *testing.T) {
	// ディレクトリ未指定ならインメモリへ格下げされること
	store := OpenStore("")
	if _, ok := store.(*MemoryStore); !ok {
		t.Errorf("期待値 *MemoryStore, 実際の型 %T", store)
	}
}

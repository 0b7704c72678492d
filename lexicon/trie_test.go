package lexicon

import (
	"testing"
)

func TestTriePutGet(t *testing.T) {
	trie := NewTrie[int]()
	trie.Put("ab", 1)
	trie.Put("abc", 2)
	trie.Put("b", 3)

	if v, ok := trie.Get("ab"); !ok || v != 1 {
		t.Errorf("Trie.Get(\"ab\") = %d, %v; want 1, true", v, ok)
	}
	if v, ok := trie.Get("abc"); !ok || v != 2 {
		t.Errorf("Trie.Get(\"abc\") = %d, %v; want 2, true", v, ok)
	}
	if _, ok := trie.Get("a"); ok {
		t.Errorf("Trie.Get(\"a\") = _, %v; want _, false", ok)
	}
	if _, ok := trie.Get(""); ok {
		t.Errorf("Trie.Get(\"\") = _, %v; want _, false", ok)
	}
	if n := trie.Len(); n != 3 {
		t.Errorf("Trie.Len() = %d; want 3", n)
	}

	trie.Put("ab", 9)
	if v, _ := trie.Get("ab"); v != 9 {
		t.Errorf("Trie.Get(\"ab\") after overwrite = %d; want 9", v)
	}
	if n := trie.Len(); n != 3 {
		t.Errorf("Trie.Len() after overwrite = %d; want 3", n)
	}
}

func TestTrieDelete(t *testing.T) {
	trie := NewTrie[int]()
	trie.Put("ab", 1)
	trie.Put("abc", 2)

	if !trie.Delete("abc") {
		t.Error("Trie.Delete(\"abc\") = false; want true")
	}
	if _, ok := trie.Get("abc"); ok {
		t.Error("Trie.Get(\"abc\") after delete = _, true; want _, false")
	}
	if v, ok := trie.Get("ab"); !ok || v != 1 {
		t.Errorf("Trie.Get(\"ab\") after deleting \"abc\" = %d, %v; want 1, true", v, ok)
	}
	if trie.Delete("abc") {
		t.Error("Trie.Delete(\"abc\") repeated = true; want false")
	}
	if trie.Delete("zz") {
		t.Error("Trie.Delete(\"zz\") = true; want false")
	}
	if n := trie.Len(); n != 1 {
		t.Errorf("Trie.Len() = %d; want 1", n)
	}

	// Deleting the last entry under a branch prunes the branch.
	cursor := trie.Root()
	cursor, _ = cursor.Step('a')
	cursor, _ = cursor.Step('b')
	if cursor.HasChildren() {
		t.Error("cursor at \"ab\" still has children after deleting \"abc\"")
	}
}

func TestTrieWalkOrder(t *testing.T) {
	trie := NewTrie[int]()
	keys := []string{"b", "ab", "abc", "aa", "ba"}
	for i, k := range keys {
		trie.Put(k, i)
	}

	want := []string{"aa", "ab", "abc", "b", "ba"}
	got := []string{}
	trie.Walk(func(key string, _ int) {
		got = append(got, key)
	})

	if len(got) != len(want) {
		t.Fatalf("Trie.Walk visited %d entries; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Trie.Walk order[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestTrieCursor(t *testing.T) {
	trie := NewTrie[string]()
	trie.Put("ni", "你")
	trie.Put("nihao", "你好")

	cursor := trie.Root()
	var ok bool
	for _, b := range []byte("ni") {
		if cursor, ok = cursor.Step(b); !ok {
			t.Fatalf("Cursor.Step(%q) = _, false; want _, true", b)
		}
	}
	if v, ok := cursor.Value(); !ok || v != "你" {
		t.Errorf("Cursor.Value() at \"ni\" = %q, %v; want \"你\", true", v, ok)
	}
	if !cursor.HasChildren() {
		t.Error("Cursor.HasChildren() at \"ni\" = false; want true")
	}
	if _, ok := cursor.Step('z'); ok {
		t.Error("Cursor.Step('z') at \"ni\" = _, true; want _, false")
	}
}

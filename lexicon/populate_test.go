package lexicon

import (
	"os"
	"testing"

	"github.com/qwwqe/pyime/entities/languages"
	"github.com/qwwqe/pyime/repository"
)

// BenchmarkLoadRepository measures a full lexicon load from postgres.
// It skips when the database is unreachable.
func BenchmarkLoadRepository(b *testing.B) {
	repo, err := repository.GetRepository(repository.RepositoryOptions{
		ConnString: os.Getenv("PYIME_TEST_DB"),
	})
	if err != nil {
		b.Skipf("database unavailable: %v", err)
	}

	lexiconName := "Simplified Chinese Comprehensive"

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		lexicon := NewLexicon(lexiconName, languages.ZH_CN)
		if err := lexicon.LoadRepository(repo); err != nil {
			b.Fatal(err)
		}
		b.Logf("Lexicon %q has %d entries.", lexiconName, lexicon.NumEntries())
	}
}

package repository

import (
	"database/sql"
	"errors"
	"log"
	"net/url"
	"strconv"
	"sync"

	_ "github.com/lib/pq"
	"github.com/qwwqe/pyime/entities/corpus"
)

// Repository persists fetched documents, lexicon entries and learned user
// phrases. It also implements colly's Storage interface so crawl state
// survives restarts.
type Repository interface {
	SaveDocument(d *corpus.Document) error
	GetDocuments(language string, limit int) ([]corpus.Document, error)

	AddLexeme(name, language, lexeme string, frequency int) error
	AddLexemes(name, language string, lexemes []string, frequencies []int) error
	GetLexemes(name, language string) ([]string, []int, error)

	SaveUserPhrase(word string, encoded []byte, frequency int) error
	GetUserPhrases() ([]UserPhrase, error)

	Init() error
	Visited(requestID uint64) error
	IsVisited(requestID uint64) (bool, error)
	Cookies(u *url.URL) string
	SetCookies(u *url.URL, cookies string)
}

// UserPhrase is a word the user has committed, keyed by its encoded pinyin.
type UserPhrase struct {
	Word      string
	Pinyin    []byte
	Frequency int
}

type RepositoryOptions struct {
	ConnString            string
	RestoreRequestHistory bool
	EnableCookies         bool
	EnableLogging         bool
}

type repository struct {
	db      *sql.DB
	Options RepositoryOptions
}

var repo *repository
var repoErr error
var once sync.Once

var defaultConnString = "user=pyime dbname=pyime sslmode=disable"

func GetRepository(options RepositoryOptions) (Repository, error) {
	once.Do(func() {
		r := &repository{Options: options}

		connString := options.ConnString
		if connString == "" {
			connString = defaultConnString
		}

		r.db, repoErr = sql.Open("postgres", connString)
		if repoErr != nil {
			return
		}

		if repoErr = r.db.Ping(); repoErr != nil {
			return
		}

		r.db.SetMaxOpenConns(50)
		r.db.SetMaxIdleConns(0)

		if repoErr = initDatabase(r.db, options.RestoreRequestHistory); repoErr != nil {
			return
		}

		repo = r
	})

	if repoErr != nil {
		return nil, repoErr
	}

	return repo, nil
}

func initDatabase(db *sql.DB, restoreRequestHistory bool) error {
	statements := []string{
		"CREATE TABLE IF NOT EXISTS documents (id SERIAL PRIMARY KEY, title VARCHAR NOT NULL, date VARCHAR, author VARCHAR, abstract VARCHAR, body TEXT NOT NULL, uri VARCHAR UNIQUE NOT NULL, canon_name VARCHAR, language VARCHAR)",
		"CREATE TABLE IF NOT EXISTS sources (name VARCHAR UNIQUE NOT NULL, uri VARCHAR)",
		"CREATE TABLE IF NOT EXISTS document_tags (name VARCHAR UNIQUE NOT NULL)",
		"CREATE TABLE IF NOT EXISTS documents_to_sources (documentId INTEGER REFERENCES documents(id), source VARCHAR REFERENCES sources(name), unique(documentId, source))",
		"CREATE TABLE IF NOT EXISTS documents_to_tags (documentId INTEGER REFERENCES documents(id), tag VARCHAR REFERENCES document_tags(name), unique(documentId, tag))",
		"CREATE TABLE IF NOT EXISTS lexemes (name VARCHAR NOT NULL, language VARCHAR NOT NULL, lexeme VARCHAR NOT NULL, frequency INTEGER NOT NULL DEFAULT 0, unique(name, language, lexeme))",
		"CREATE TABLE IF NOT EXISTS user_phrases (word VARCHAR NOT NULL, pinyin BYTEA NOT NULL, frequency INTEGER NOT NULL DEFAULT 0, unique(word, pinyin))",
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return err
		}
	}

	if !restoreRequestHistory {
		if _, err := db.Exec("DROP TABLE IF EXISTS request_history"); err != nil {
			return err
		}
		if _, err := db.Exec("DROP TABLE IF EXISTS cookie_history"); err != nil {
			return err
		}
	}

	crawlStatements := []string{
		"CREATE TABLE IF NOT EXISTS request_history (requestId VARCHAR)",
		"CREATE UNIQUE INDEX IF NOT EXISTS requestId_idx ON request_history(requestId)",
		"CREATE TABLE IF NOT EXISTS cookie_history (host VARCHAR, cookies VARCHAR)",
		"CREATE UNIQUE INDEX IF NOT EXISTS host_idx ON cookie_history(host)",
	}

	for _, statement := range crawlStatements {
		if _, err := db.Exec(statement); err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) SaveDocument(d *corpus.Document) error {
	// TODO: use a transaction
	var lastDocumentId int
	err := r.db.QueryRow("INSERT INTO documents (title, date, author, abstract, body, uri, canon_name, language) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT DO NOTHING RETURNING id",
		d.Title, d.Date, d.Author, d.Abstract, d.Body, d.Uri, d.CanonName, d.Language).Scan(&lastDocumentId)
	if err != nil {
		if err == sql.ErrNoRows { // document saved already
			return nil
		}

		return err
	}

	_, err = r.db.Exec("INSERT INTO sources (name) VALUES ($1) ON CONFLICT DO NOTHING", d.CanonName)
	if err != nil {
		return err
	}

	for _, tag := range d.Tags {
		_, err = r.db.Exec("INSERT INTO document_tags (name) VALUES ($1) ON CONFLICT DO NOTHING", tag)
		if err != nil {
			return err
		}

		_, err = r.db.Exec("INSERT INTO documents_to_tags (documentId, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING", lastDocumentId, tag)
		if err != nil {
			return err
		}
	}

	_, err = r.db.Exec("INSERT INTO documents_to_sources (documentId, source) VALUES ($1, $2) ON CONFLICT DO NOTHING", lastDocumentId, d.CanonName)
	if err != nil {
		return err
	}

	return nil
}

func (r *repository) GetDocuments(language string, limit int) ([]corpus.Document, error) {
	query := "SELECT id, title, COALESCE(date, ''), COALESCE(author, ''), COALESCE(abstract, ''), body, uri, COALESCE(canon_name, ''), COALESCE(language, '') FROM documents"
	args := []interface{}{}
	if language != "" {
		query += " WHERE language = $1"
		args = append(args, language)
	}
	query += " ORDER BY id"
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	documents := []corpus.Document{}
	for rows.Next() {
		var d corpus.Document
		err = rows.Scan(&d.Id, &d.Title, &d.Date, &d.Author, &d.Abstract, &d.Body, &d.Uri, &d.CanonName, &d.Language)
		if err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}

	return documents, rows.Err()
}

func (r *repository) AddLexeme(name, language, lexeme string, frequency int) error {
	_, err := r.db.Exec("INSERT INTO lexemes (name, language, lexeme, frequency) VALUES ($1, $2, $3, $4) ON CONFLICT (name, language, lexeme) DO UPDATE SET frequency = EXCLUDED.frequency",
		name, language, lexeme, frequency)
	return err
}

func (r *repository) AddLexemes(name, language string, lexemes []string, frequencies []int) error {
	if len(lexemes) != len(frequencies) {
		return errors.New("repository: lexeme and frequency counts differ")
	}

	// TODO: use a transaction
	for i, lexeme := range lexemes {
		if err := r.AddLexeme(name, language, lexeme, frequencies[i]); err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) GetLexemes(name, language string) ([]string, []int, error) {
	rows, err := r.db.Query("SELECT lexeme, frequency FROM lexemes WHERE name = $1 AND language = $2", name, language)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	lexemes := []string{}
	frequencies := []int{}
	for rows.Next() {
		var lexeme string
		var frequency int
		if err = rows.Scan(&lexeme, &frequency); err != nil {
			return nil, nil, err
		}
		lexemes = append(lexemes, lexeme)
		frequencies = append(frequencies, frequency)
	}

	return lexemes, frequencies, rows.Err()
}

func (r *repository) SaveUserPhrase(word string, encoded []byte, frequency int) error {
	_, err := r.db.Exec("INSERT INTO user_phrases (word, pinyin, frequency) VALUES ($1, $2, $3) ON CONFLICT (word, pinyin) DO UPDATE SET frequency = user_phrases.frequency + EXCLUDED.frequency",
		word, encoded, frequency)
	return err
}

func (r *repository) GetUserPhrases() ([]UserPhrase, error) {
	rows, err := r.db.Query("SELECT word, pinyin, frequency FROM user_phrases ORDER BY frequency DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phrases := []UserPhrase{}
	for rows.Next() {
		var p UserPhrase
		if err = rows.Scan(&p.Word, &p.Pinyin, &p.Frequency); err != nil {
			return nil, err
		}
		phrases = append(phrases, p)
	}

	return phrases, rows.Err()
}

// Below is this repository's implementation of colly's Storage interface

func (r *repository) Init() error {
	return nil
}

func (r *repository) Visited(requestId uint64) error {
	// Go's sql package doesn't support insertion of uint64s...
	requestIdString := strconv.FormatUint(requestId, 10)
	_, err := r.db.Exec("INSERT INTO request_history (requestId) VALUES ($1) ON CONFLICT DO NOTHING", requestIdString)
	return err
}

func (r *repository) IsVisited(requestId uint64) (bool, error) {
	requestIdString := strconv.FormatUint(requestId, 10)
	var destRequest string

	err := r.db.QueryRow("SELECT requestId FROM request_history WHERE requestId = $1", requestIdString).Scan(&destRequest)
	if err == sql.ErrNoRows {
		return false, nil
	} else if err != nil {
		r.logf("request history lookup: %v", err)
		return false, err
	}

	return true, nil
}

func (r *repository) Cookies(u *url.URL) string {
	if !r.Options.EnableCookies {
		return ""
	}

	var cookies string
	err := r.db.QueryRow("SELECT cookies FROM cookie_history WHERE host = $1", u.Hostname()).Scan(&cookies)
	if err != nil {
		if err != sql.ErrNoRows {
			r.logf("cookie lookup: %v", err)
		}
		return ""
	}

	return cookies
}

func (r *repository) SetCookies(u *url.URL, cookies string) {
	if !r.Options.EnableCookies {
		return
	}

	_, err := r.db.Exec("INSERT INTO cookie_history (host, cookies) VALUES ($1, $2) ON CONFLICT DO NOTHING", u.Hostname(), cookies)
	if err != nil {
		r.logf("cookie save: %v", err)
	}
}

func (r *repository) logf(format string, args ...interface{}) {
	if r.Options.EnableLogging {
		log.Printf("repository: "+format, args...)
	}
}

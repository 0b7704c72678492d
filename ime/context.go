package ime

import (
	"errors"
	"fmt"

	"github.com/qwwqe/pyime/decoder"
	"github.com/qwwqe/pyime/pinyin"
)

// Context is one editing session over an Engine: a typed input buffer,
// its segmentation graph kept current by merging on each edit, and the
// candidate sentences decoded from it.
type Context struct {
	engine    *Engine
	input     string
	graph     *pinyin.SegmentGraph
	sentences []decoder.Sentence
	selected  int
}

// NewContext opens an empty editing session.
func (e *Engine) NewContext() *Context {
	return &Context{engine: e, selected: -1}
}

// Type appends s to the input buffer and reparses.
func (c *Context) Type(s string) {
	if s == "" {
		return
	}
	c.input += s
	c.update()
}

// Backspace removes the last byte of the input buffer and reparses.
func (c *Context) Backspace() {
	if c.input == "" {
		return
	}
	c.input = c.input[:len(c.input)-1]
	c.update()
}

// Input returns the typed buffer.
func (c *Context) Input() string {
	return c.input
}

// Candidates returns the current candidate sentences, cheapest first.
// Input with no full syllable coverage has no candidates.
func (c *Context) Candidates() []decoder.Sentence {
	return c.sentences
}

// Select marks the i-th candidate as the user's choice.
func (c *Context) Select(i int) error {
	if i < 0 || i >= len(c.sentences) {
		return fmt.Errorf("ime: candidate index %d out of range", i)
	}
	c.selected = i
	return nil
}

// Selected returns the chosen candidate, or false when nothing has been
// selected since the last edit.
func (c *Context) Selected() (decoder.Sentence, bool) {
	if c.selected < 0 {
		return decoder.Sentence{}, false
	}
	return c.sentences[c.selected], true
}

// Learn commits the selected candidate: its words feed the history
// bigram model, and its dictionary-backed words are persisted as user
// phrases when a repository is attached.
func (c *Context) Learn() error {
	if c.selected < 0 {
		return errors.New("ime: no candidate selected")
	}

	sentence := c.sentences[c.selected]
	c.engine.history.Add(sentence.Words())

	if c.engine.repo == nil {
		return nil
	}
	for _, n := range sentence.Nodes {
		if n.Index == decoder.InvalidWordIndex {
			continue
		}
		if err := c.engine.repo.SaveUserPhrase(n.Word, n.Encoded, 1); err != nil {
			return err
		}
	}
	return nil
}

// Clear empties the input buffer and drops the session's graph and
// candidates.
func (c *Context) Clear() {
	c.input = ""
	c.graph = nil
	c.sentences = nil
	c.selected = -1
}

func (c *Context) update() {
	fresh := pinyin.Parse(c.input, c.engine.options.FuzzyFlags)
	if c.graph == nil {
		c.graph = fresh
	} else {
		c.graph.Merge(fresh)
	}

	c.selected = -1
	if c.input == "" || !c.graph.CheckGraph() {
		c.sentences = nil
		return
	}
	c.sentences = c.engine.decoder.Decode(c.graph, c.engine.options.NBest)
}

package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const (
	sourcePrefix      = "S:"
	targetPrefix      = "T:"
	sourceAudioPrefix = "SA:"
	targetAudioPrefix = "TA:"
)

// Entry is one card as written in a deck file: two texts plus optional
// paths to audio files, relative to the deck file's directory.
type Entry struct {
	SourceText      string
	TargetText      string
	SourceAudioPath string
	TargetAudioPath string
}

type state int

const (
	seeking state = iota
	readingSource
	readingTarget
)

// ParseFile reads a deck file from the given path and extracts all entries.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads card entries from an io.Reader. An entry starts at an S:
// line; S: and T: blocks may span multiple lines, SA: and TA: lines name
// audio files and are single-line. Entries are separated by "---" or by
// the next S: line.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []Entry
	var current Entry
	var block []string
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch currentState {
		case readingSource:
			current.SourceText = content
		case readingTarget:
			current.TargetText = content
		}
		block = nil
	}

	finishEntry := func() {
		flushBlock()
		if current.SourceText != "" || current.TargetText != "" {
			entries = append(entries, current)
		}
		current = Entry{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == "---" {
			finishEntry()
			continue
		}

		switch {
		case strings.HasPrefix(line, sourceAudioPrefix):
			flushBlock()
			current.SourceAudioPath = strings.TrimSpace(line[len(sourceAudioPrefix):])
			currentState = seeking
		case strings.HasPrefix(line, targetAudioPrefix):
			flushBlock()
			current.TargetAudioPath = strings.TrimSpace(line[len(targetAudioPrefix):])
			currentState = seeking
		case strings.HasPrefix(line, sourcePrefix):
			if currentState != seeking || current.SourceText != "" {
				finishEntry()
			}
			flushBlock()
			currentState = readingSource
			block = append(block, trimPrefixLine(line, sourcePrefix))
		case strings.HasPrefix(line, targetPrefix):
			flushBlock()
			currentState = readingTarget
			block = append(block, trimPrefixLine(line, targetPrefix))
		default:
			if currentState != seeking {
				block = append(block, line)
			}
		}
	}

	finishEntry()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func trimPrefixLine(line, prefix string) string {
	content := line[len(prefix):]
	if strings.HasPrefix(content, " ") {
		content = content[1:]
	}
	return content
}

package storage

import (
	"bytes"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abatilo/ideas/internal/idea"
)

const frontmatterDelimiter = "---"

// ideaFrontmatter is the YAML-serializable portion of an idea.
type ideaFrontmatter struct {
	ID        string `yaml:"id"`
	RemoteID  string `yaml:"remote_id,omitempty"`
	Title     string `yaml:"title"`
	Status    string `yaml:"status"`
	Priority  string `yaml:"priority"`
	CreatedAt string `yaml:"created_at,omitempty"`
}

// ParseMarkdown parses a markdown file with YAML frontmatter into an Idea.
// The body after the frontmatter is the description.
func ParseMarkdown(content []byte) (*idea.Idea, error) {
	front, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	var fm ideaFrontmatter
	if err = yaml.Unmarshal([]byte(front), &fm); err != nil {
		return nil, &parseError{"invalid YAML: " + err.Error()}
	}
	if fm.ID == "" {
		return nil, &parseError{"missing id"}
	}

	var status idea.Status
	if err := status.UnmarshalText([]byte(fm.Status)); err != nil {
		return nil, err
	}
	var priority idea.Priority
	if err := priority.UnmarshalText([]byte(fm.Priority)); err != nil {
		return nil, err
	}

	// Undated ideas keep a zero CreatedAt.
	var createdAt time.Time
	if fm.CreatedAt != "" {
		t, err := idea.ParseTime(fm.CreatedAt)
		if err != nil {
			return nil, &parseError{"invalid created_at: " + err.Error()}
		}
		createdAt = t
	}

	return &idea.Idea{
		ID:          fm.ID,
		RemoteID:    fm.RemoteID,
		Title:       fm.Title,
		Description: body,
		Status:      status,
		Priority:    priority,
		CreatedAt:   createdAt,
	}, nil
}

// SerializeMarkdown converts an Idea to markdown with YAML frontmatter.
func SerializeMarkdown(i *idea.Idea) ([]byte, error) {
	fm := ideaFrontmatter{
		ID:       i.ID,
		RemoteID: i.RemoteID,
		Title:    i.Title,
		Status:   string(i.Status),
		Priority: string(i.Priority),
	}
	if !i.CreatedAt.IsZero() {
		fm.CreatedAt = i.CreatedAt.Format(time.RFC3339Nano)
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(frontmatterDelimiter + "\n")

	if i.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(i.Description)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// splitFrontmatter separates the YAML between the two delimiter lines from
// the trimmed body that follows.
func splitFrontmatter(content []byte) (string, string, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	first, rest, _ := strings.Cut(text, "\n")
	if strings.TrimSpace(first) != frontmatterDelimiter {
		return "", "", &parseError{"missing YAML frontmatter"}
	}

	var front strings.Builder
	for rest != "" {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		if strings.TrimSpace(line) == frontmatterDelimiter {
			return front.String(), strings.TrimSpace(rest), nil
		}
		front.WriteString(line)
		front.WriteByte('\n')
	}
	return "", "", &parseError{"unclosed YAML frontmatter"}
}

type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}

// Package syllabus builds the day-by-day study plan topics.
package syllabus

import (
	"fmt"
	"regexp"
	"strings"
)

// Days is the fixed length of a study plan.
const Days = 30

// minTopicLen drops stray fragments such as "1." or "-" left by list
// formatting.
const minTopicLen = 3

var linePrefix = regexp.MustCompile(`^(Day\s\d+:|\d+\.|\d+\))`)

// ParseTopics extracts topic names from a newline-separated list. Lines of
// minTopicLen characters or fewer are dropped and "Day N:", "N." and "N)"
// prefixes are removed.
func ParseTopics(text string) []string {
	var topics []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if len(line) <= minTopicLen {
			continue
		}
		topic := strings.TrimSpace(linePrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		topic = strings.Trim(topic, "*-• ")
		if topic == "" {
			continue
		}
		topics = append(topics, topic)
	}
	return topics
}

// Fit returns exactly Days topics: the input truncated, or padded with
// revision entries for subject.
func Fit(topics []string, subject string) []string {
	out := make([]string, 0, Days)
	for _, t := range topics {
		if len(out) == Days {
			break
		}
		out = append(out, t)
	}
	for len(out) < Days {
		out = append(out, RevisionTopic(subject))
	}
	return out
}

// RevisionTopic is the filler used when fewer than Days topics are known.
func RevisionTopic(subject string) string {
	return fmt.Sprintf("Advanced revision of %s", subject)
}

// Fallback returns a numbered concept list used when no topics could be
// generated at all.
func Fallback(subject string) []string {
	topics := make([]string, Days)
	for i := range topics {
		topics[i] = fmt.Sprintf("%s Concept %d", subject, i+1)
	}
	return topics
}

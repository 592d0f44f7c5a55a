package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validBug() Bug {
	return Bug{
		Title:       "Login button unresponsive",
		Description: "Clicking login does nothing on Safari",
		Status:      BugStatusOpen,
		Priority:    BugPriorityMedium,
	}
}

func TestBugValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Bug)
		wantKey []string
	}{
		{
			name:   "valid bug",
			mutate: func(b *Bug) {},
		},
		{
			name:    "empty title",
			mutate:  func(b *Bug) { b.Title = "" },
			wantKey: []string{"title"},
		},
		{
			name:    "whitespace title",
			mutate:  func(b *Bug) { b.Title = "   " },
			wantKey: []string{"title"},
		},
		{
			name:    "empty description",
			mutate:  func(b *Bug) { b.Description = "" },
			wantKey: []string{"description"},
		},
		{
			name:    "unknown status",
			mutate:  func(b *Bug) { b.Status = "closed" },
			wantKey: []string{"status"},
		},
		{
			name:    "unknown priority",
			mutate:  func(b *Bug) { b.Priority = "urgent" },
			wantKey: []string{"priority"},
		},
		{
			name: "everything wrong",
			mutate: func(b *Bug) {
				b.Title = ""
				b.Description = ""
				b.Status = ""
				b.Priority = ""
			},
			wantKey: []string{"title", "description", "status", "priority"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bug := validBug()
			tc.mutate(&bug)
			problems := bug.Validate()
			assert.Len(t, problems, len(tc.wantKey))
			for _, key := range tc.wantKey {
				assert.Contains(t, problems, key)
			}
		})
	}
}

func TestBugValidateMessages(t *testing.T) {
	bug := Bug{Status: BugStatusOpen, Priority: BugPriorityLow}
	problems := bug.Validate()
	assert.Equal(t, "Title is required", problems["title"])
	assert.Equal(t, "Description is required", problems["description"])
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []BugStatus{BugStatusOpen, BugStatusInProgress, BugStatusResolved} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, BugStatus("").IsValid())
	assert.False(t, BugStatus("OPEN").IsValid())
	assert.False(t, BugStatus("done").IsValid())
}

func TestPriorityIsValid(t *testing.T) {
	for _, p := range []BugPriority{BugPriorityLow, BugPriorityMedium, BugPriorityHigh} {
		assert.True(t, p.IsValid(), string(p))
	}
	assert.False(t, BugPriority("urgent").IsValid())
	assert.False(t, BugPriority("MEDIUM").IsValid())
}

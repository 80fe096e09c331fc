package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
)

type CommentList struct {
	Items         []data.Comment
	SelectedIndex int
	Width         int
}

func NewCommentList() *CommentList {
	return &CommentList{Width: 80}
}

func (l *CommentList) SetItems(items []data.Comment) {
	l.Items = items
	if l.SelectedIndex >= len(items) {
		l.SelectedIndex = 0
	}
}

func (l *CommentList) Next() {
	if len(l.Items) == 0 {
		return
	}
	if l.SelectedIndex < len(l.Items)-1 {
		l.SelectedIndex++
	}
}

func (l *CommentList) Prev() {
	if l.SelectedIndex > 0 {
		l.SelectedIndex--
	}
}

func (l *CommentList) AtEnd() bool {
	return len(l.Items) > 0 && l.SelectedIndex == len(l.Items)-1
}

func (l *CommentList) Selected() *data.Comment {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return &l.Items[l.SelectedIndex]
}

func (l *CommentList) View() string {
	if len(l.Items) == 0 {
		return styles.MutedStyle.Render("No comments yet") + "\n"
	}

	var b strings.Builder
	for i, comment := range l.Items {
		author := styles.CharacterStyle("").Render(comment.Author.Username)
		likeTag := ""
		if comment.LikesCount > 0 {
			likeTag = fmt.Sprintf(" (%d♥)", comment.LikesCount)
		}
		if comment.IsLiked {
			likeTag += " ♥"
		}
		line := author + styles.TextStyle.Render(": "+comment.Text) + styles.MutedStyle.Render(likeTag)
		if i == l.SelectedIndex {
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

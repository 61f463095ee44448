package services

import (
	"github.com/rowanlabs/inkwell/pkg/internal/database"
	"github.com/rowanlabs/inkwell/pkg/internal/models"
	"github.com/rowanlabs/inkwell/pkg/internal/status"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/clause"
)

func GetComment(id uint) (models.Comment, error) {
	var comment models.Comment
	if err := database.C.
		Preload("Author").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return comment, status.FromGorm(err, "comment")
	}
	return comment, nil
}

// NewComment validates the comment against its author, its post and, when
// replying, its parent, then persists it pending moderation.
func NewComment(actorID uint, item models.Comment) (models.Comment, error) {
	author, err := GetAccountWithID(actorID)
	if err != nil {
		return item, err
	}

	var post models.Post
	if err := database.C.Where("id = ?", item.PostID).First(&post).Error; err != nil {
		return item, status.FromGorm(err, "post")
	}
	if !post.AllowComments {
		return item, status.InvalidState("comments are disabled on this post")
	}

	if item.ParentID != nil {
		parent, err := GetComment(*item.ParentID)
		if err != nil {
			return item, err
		}
		if parent.PostID != post.ID {
			return item, status.Conflict("parent comment belongs to a different post")
		}
	}

	item.AuthorID = author.ID
	item.Author = author
	item.Content = SanitizeCommentContent(item.Content)
	// New comments wait for moderation before they become publicly visible.
	item.IsApproved = false

	if err := database.C.Create(&item).Error; err != nil {
		return item, status.FromGorm(err, "comment")
	}

	log.Debug().Uint("post", post.ID).Uint("author", author.ID).Msg("A comment was submitted.")
	return item, nil
}

// ReplyComment inherits the post and parent references from the parent
// comment, so a reply can never target a different post than its parent.
func ReplyComment(parentID uint, actorID uint, item models.Comment) (models.Comment, error) {
	parent, err := GetComment(parentID)
	if err != nil {
		return item, err
	}

	item.PostID = parent.PostID
	item.ParentID = &parent.ID

	return NewComment(actorID, item)
}

// EditComment replaces the content. Edited comments go back to pending so
// moderators see the new text.
func EditComment(commentID uint, actorID uint, content string) (models.Comment, error) {
	comment, err := GetComment(commentID)
	if err != nil {
		return comment, err
	}
	if comment.AuthorID != actorID {
		return comment, status.Forbidden("only the comment author may edit it")
	}

	comment.Content = SanitizeCommentContent(content)
	comment.IsApproved = false

	if err := database.C.Omit(clause.Associations).Save(&comment).Error; err != nil {
		return comment, err
	}

	return comment, nil
}

func DeleteComment(commentID uint, actorID uint, isAdmin bool) error {
	comment, err := GetComment(commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID && !isAdmin {
		return status.Forbidden("only the comment author or an admin may delete it")
	}

	return database.C.Unscoped().Delete(&comment).Error
}

func ApproveComment(commentID uint) (models.Comment, error) {
	comment, err := GetComment(commentID)
	if err != nil {
		return comment, err
	}

	comment.IsApproved = true
	if err := database.C.Omit(clause.Associations).Save(&comment).Error; err != nil {
		return comment, err
	}

	return comment, nil
}

// RejectComment removes the comment outright; there is no retained
// rejected state.
func RejectComment(commentID uint) error {
	comment, err := GetComment(commentID)
	if err != nil {
		return err
	}

	return database.C.Unscoped().Delete(&comment).Error
}

func CountCommentByPost(postID uint) int64 {
	var count int64
	if err := database.C.Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0
	}

	return count
}

func ListCommentByPost(postID uint, take int, offset int, includePending bool) ([]models.Comment, error) {
	if take > 100 {
		take = 100
	}

	tx := database.C.Where("post_id = ?", postID)
	if !includePending {
		tx = tx.Where("is_approved = ?", true)
	}

	var comments []models.Comment
	err := tx.
		Preload("Author").
		Order("created_at ASC").
		Limit(take).Offset(offset).
		Find(&comments).Error

	return comments, err
}

func ListCommentByAccount(accountID uint, take int, offset int) ([]models.Comment, error) {
	if take > 100 {
		take = 100
	}

	var comments []models.Comment
	err := database.C.
		Where("author_id = ?", accountID).
		Preload("Author").
		Order("created_at DESC").
		Limit(take).Offset(offset).
		Find(&comments).Error

	return comments, err
}

func ListPendingComments(take int, offset int) ([]models.Comment, error) {
	if take > 100 {
		take = 100
	}

	var comments []models.Comment
	err := database.C.
		Where("is_approved = ?", false).
		Preload("Author").
		Order("created_at ASC").
		Limit(take).Offset(offset).
		Find(&comments).Error

	return comments, err
}

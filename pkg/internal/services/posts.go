package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rowanlabs/inkwell/pkg/internal/database"
	"github.com/rowanlabs/inkwell/pkg/internal/models"
	"github.com/rowanlabs/inkwell/pkg/internal/slug"
	"github.com/rowanlabs/inkwell/pkg/internal/status"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func FilterPostDraft(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_draft = ? OR is_draft IS NULL", false)
}

func FilterPostWithPublishedAt(tx *gorm.DB, date time.Time) *gorm.DB {
	return tx.Where("published_at <= ? OR published_at IS NULL", date)
}

func FilterPostPublished(tx *gorm.DB) *gorm.DB {
	return FilterPostWithPublishedAt(FilterPostDraft(tx), time.Now())
}

func FilterPostWithAuthor(tx *gorm.DB, authorID uint) *gorm.DB {
	return tx.Where("author_id = ?", authorID)
}

func FilterPostWithAuthorDraft(tx *gorm.DB, authorID uint) *gorm.DB {
	return tx.Where("author_id = ? AND is_draft = ?", authorID, true)
}

func FilterPostFeatured(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_featured = ?", true)
}

// The taxonomy filters match through subqueries so the outer statement keeps
// selecting full rows and stays composable with counting and ordering.
func FilterPostWithCategory(tx *gorm.DB, slugs string) *gorm.DB {
	sub := database.C.Model(&models.Post{}).
		Select("posts.id").
		Joins("JOIN post_categories ON posts.id = post_categories.post_id").
		Joins("JOIN categories ON categories.id = post_categories.category_id").
		Where("categories.slug IN ?", strings.Split(slugs, ","))
	return tx.Where("posts.id IN (?)", sub)
}

func FilterPostWithTag(tx *gorm.DB, slugs string) *gorm.DB {
	aliases := strings.Split(slugs, ",")
	sub := database.C.Model(&models.Post{}).
		Select("posts.id").
		Joins("JOIN post_tags ON posts.id = post_tags.post_id").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.slug IN ?", aliases).
		Group("posts.id").
		Having("COUNT(DISTINCT tags.id) = ?", len(aliases))
	return tx.Where("posts.id IN (?)", sub)
}

func FilterPostWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + probe + "%"
	return tx.Where(
		"title ILIKE ? OR summary ILIKE ? OR content ILIKE ?",
		probe, probe, probe,
	)
}

func PreloadPostGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Tags").
		Preload("Categories").
		Preload("Author")
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadPostGeneral(tx).
		Where("posts.id = ?", id).
		First(&item).Error; err != nil {
		return item, status.FromGorm(err, "post")
	}

	item.CommentCount = CountCommentByPost(item.ID)
	return item, nil
}

func GetPostBySlug(tx *gorm.DB, slugStr string) (models.Post, error) {
	var item models.Post
	if err := PreloadPostGeneral(tx).
		Where("posts.slug = ?", slugStr).
		First(&item).Error; err != nil {
		return item, status.FromGorm(err, "post")
	}

	item.CommentCount = CountCommentByPost(item.ID)
	return item, nil
}

// GetPostByAlias resolves a post by numeric id or by slug. A numeric alias
// is tried as an id first; when no post carries that id, it falls through to
// the slug lookup so all-numeric slugs stay reachable. The returned flag
// reports whether the slug path resolved it.
func GetPostByAlias(alias string) (models.Post, bool, error) {
	if id, err := strconv.Atoi(alias); err == nil {
		item, err := GetPost(database.C, uint(id))
		if err == nil {
			return item, false, nil
		}
		if status.KindOf(err) != status.KindNotFound {
			return item, false, err
		}
	}

	item, err := GetPostBySlug(database.C, alias)
	return item, err == nil, err
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListPost(tx *gorm.DB, take int, offset int, order any) ([]*models.Post, error) {
	if take > 100 {
		take = 100
	}

	var items []*models.Post
	if err := PreloadPostGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}

	// Load comment counts in one grouped query
	idx := lo.Map(items, func(item *models.Post, index int) uint {
		return item.ID
	})
	if len(idx) > 0 {
		var counts []struct {
			PostID uint
			Count  int64
		}
		if err := database.C.Model(&models.Comment{}).
			Select("post_id, COUNT(id) as count").
			Where("post_id IN ?", idx).
			Group("post_id").
			Scan(&counts).Error; err != nil {
			return items, err
		}

		itemMap := lo.SliceToMap(items, func(item *models.Post) (uint, *models.Post) {
			return item.ID, item
		})
		for _, info := range counts {
			if post, ok := itemMap[info.PostID]; ok {
				post.CommentCount = info.Count
			}
		}
	}

	return items, nil
}

// NextAvailableSlug appends -1, -2, ... to the base until the taken probe
// clears. It always terminates with a free slug.
func NextAvailableSlug(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for idx := 1; ; idx++ {
		candidate := fmt.Sprintf("%s-%d", base, idx)
		if !taken(candidate) {
			return candidate
		}
	}
}

// postSlugBase derives the slug base from the title, trimmed to leave
// headroom for a collision suffix under the slug column size.
func postSlugBase(title string) string {
	const limit = 192
	base := slug.Generate(title)
	if len(base) > limit {
		base = strings.Trim(base[:limit], "-")
	}
	return base
}

// UniquePostSlug derives a slug from the title and suffixes it past any
// collision. Pass the post's own id when updating so it does not collide
// with itself. The check-then-write gap is closed by the unique index.
func UniquePostSlug(title string, excludeID uint) string {
	base := postSlugBase(title)
	return NextAvailableSlug(base, func(candidate string) bool {
		var count int64
		tx := database.C.Model(&models.Post{}).Where("slug = ?", candidate)
		if excludeID > 0 {
			tx = tx.Where("id != ?", excludeID)
		}
		tx.Count(&count)
		return count > 0
	})
}

// ResolvePostCategories looks up the requested category slugs, silently
// skipping references that do not resolve.
func ResolvePostCategories(refs []string) ([]models.Category, error) {
	refs = lo.Uniq(lo.Map(refs, func(ref string, index int) string {
		return strings.TrimSpace(ref)
	}))

	resolved := make([]models.Category, 0, len(refs))
	for _, ref := range refs {
		if len(ref) == 0 {
			continue
		}
		category, err := GetCategory(ref)
		if err != nil {
			if status.KindOf(err) == status.KindNotFound {
				continue
			}
			return resolved, err
		}
		resolved = append(resolved, category)
	}

	return resolved, nil
}

// ResolvePostTags maps free text tag names onto stored tags, creating any
// that do not exist yet.
func ResolvePostTags(names []string) ([]models.Tag, error) {
	names = lo.Uniq(lo.Map(names, func(name string, index int) string {
		return strings.ToLower(strings.TrimSpace(name))
	}))

	resolved := make([]models.Tag, 0, len(names))
	for _, name := range names {
		if len(name) == 0 {
			continue
		}
		tag, err := GetTagOrCreate(name)
		if err != nil {
			return resolved, err
		}
		resolved = append(resolved, tag)
	}

	return resolved, nil
}

func EnsurePostCategoriesAndTags(item models.Post, categories []string, tags []string) (models.Post, error) {
	var err error
	if item.Categories, err = ResolvePostCategories(categories); err != nil {
		return item, err
	}
	if item.Tags, err = ResolvePostTags(tags); err != nil {
		return item, err
	}
	return item, nil
}

func NewPost(author models.Account, item models.Post, categories []string, tags []string) (models.Post, error) {
	item.AuthorID = author.ID
	item.Author = author
	item.Slug = UniquePostSlug(item.Title, 0)
	item.Language = DetectLanguage(item.Content)

	if item.IsDraft {
		item.PublishedAt = nil
	} else if item.PublishedAt == nil {
		item.PublishedAt = lo.ToPtr(time.Now())
	}

	start := time.Now()
	log.Debug().Str("slug", item.Slug).Msg("Posting a post...")

	item, err := EnsurePostCategoriesAndTags(item, categories, tags)
	if err != nil {
		return item, err
	}

	if err := database.C.Create(&item).Error; err != nil {
		return item, status.FromGorm(err, "post")
	}

	log.Debug().Dur("elapsed", time.Since(start)).Msg("The post is posted.")
	return GetPost(database.C, item.ID)
}

// PostUpdate carries the optional field changes of an update request. Nil
// means untouched; a pointer to an empty set still means "replace with
// nothing" for the taxonomy dimensions.
type PostUpdate struct {
	Title         *string
	Content       *string
	Summary       *string
	CoverImage    *string
	Attachments   *[]string
	AllowComments *bool
	IsDraft       *bool
	Categories    *[]string
	Tags          *[]string
}

func UpdatePost(postID uint, update PostUpdate) (models.Post, error) {
	var item models.Post
	if err := database.C.Where("id = ?", postID).First(&item).Error; err != nil {
		return item, status.FromGorm(err, "post")
	}

	if update.Title != nil && *update.Title != item.Title {
		item.Title = *update.Title
		item.Slug = UniquePostSlug(item.Title, item.ID)
	}
	if update.Content != nil {
		item.Content = *update.Content
		item.Language = DetectLanguage(item.Content)
	}
	if update.Summary != nil {
		item.Summary = *update.Summary
	}
	if update.CoverImage != nil {
		item.CoverImage = update.CoverImage
	}
	if update.Attachments != nil {
		item.Attachments = datatypes.NewJSONSlice(*update.Attachments)
	}
	if update.AllowComments != nil {
		item.AllowComments = *update.AllowComments
	}
	if update.IsDraft != nil {
		if *update.IsDraft {
			item.IsDraft = true
		} else if item.IsDraft {
			item.IsDraft = false
			item.PublishedAt = lo.ToPtr(time.Now())
		}
	}

	if err := database.C.Omit(clause.Associations).Save(&item).Error; err != nil {
		return item, status.FromGorm(err, "post")
	}

	// Full replace, not a diff: the requested set wins wholesale, so an
	// empty set clears the dimension. Last writer wins under concurrency.
	if update.Categories != nil {
		resolved, err := ResolvePostCategories(*update.Categories)
		if err != nil {
			return item, err
		}
		if err := replacePostAssociation(&item, "Categories", lo.ToAnySlice(resolved)); err != nil {
			return item, err
		}
	}
	if update.Tags != nil {
		resolved, err := ResolvePostTags(*update.Tags)
		if err != nil {
			return item, err
		}
		if err := replacePostAssociation(&item, "Tags", lo.ToAnySlice(resolved)); err != nil {
			return item, err
		}
	}

	return GetPost(database.C, item.ID)
}

func replacePostAssociation(item *models.Post, name string, values []any) error {
	assoc := database.C.Model(item).Association(name)
	if len(values) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values...)
}

func DeletePost(item models.Post) error {
	if err := database.C.Delete(&item).Error; err != nil {
		return status.FromGorm(err, "post")
	}
	return nil
}

// PublishPost is idempotent and always stamps the publication time, even on
// an already published post.
func PublishPost(postID uint) (models.Post, error) {
	var item models.Post
	if err := database.C.Where("id = ?", postID).First(&item).Error; err != nil {
		return item, status.FromGorm(err, "post")
	}

	item.IsDraft = false
	item.PublishedAt = lo.ToPtr(time.Now())

	if err := database.C.Omit(clause.Associations).Save(&item).Error; err != nil {
		return item, err
	}

	return GetPost(database.C, item.ID)
}

// UnpublishPost sends the post back to draft. The published timestamp is
// kept, so the first publication date survives a draft round trip.
func UnpublishPost(postID uint) (models.Post, error) {
	var item models.Post
	if err := database.C.Where("id = ?", postID).First(&item).Error; err != nil {
		return item, status.FromGorm(err, "post")
	}

	item.IsDraft = true

	if err := database.C.Omit(clause.Associations).Save(&item).Error; err != nil {
		return item, err
	}

	return GetPost(database.C, item.ID)
}

// SetPostFeatured toggles the featured flag. Featuring a draft is allowed;
// no cross-field validation happens at this layer.
func SetPostFeatured(postID uint, featured bool) (models.Post, error) {
	var item models.Post
	if err := database.C.Where("id = ?", postID).First(&item).Error; err != nil {
		return item, status.FromGorm(err, "post")
	}

	item.IsFeatured = featured

	if err := database.C.Omit(clause.Associations).Save(&item).Error; err != nil {
		return item, err
	}

	return GetPost(database.C, item.ID)
}

package services

import (
	"errors"
	"strings"

	"github.com/rowanlabs/inkwell/pkg/internal/database"
	"github.com/rowanlabs/inkwell/pkg/internal/models"
	"github.com/rowanlabs/inkwell/pkg/internal/slug"
	"github.com/rowanlabs/inkwell/pkg/internal/status"
	"gorm.io/gorm"
)

func SearchCategories(take int, offset int, probe string) ([]models.Category, error) {
	probe = "%" + probe + "%"

	var categories []models.Category
	err := database.C.
		Where("slug ILIKE ? OR name ILIKE ?", probe, probe).
		Offset(offset).Limit(take).Find(&categories).Error

	return categories, err
}

func ListCategory(take int, offset int) ([]models.Category, error) {
	var categories []models.Category
	err := database.C.Order("name ASC").Offset(offset).Limit(take).Find(&categories).Error

	return categories, err
}

func GetCategory(slugStr string) (models.Category, error) {
	var category models.Category
	if err := database.C.Where("slug = ?", slugStr).First(&category).Error; err != nil {
		return category, status.FromGorm(err, "category")
	}
	return category, nil
}

func GetCategoryWithID(id uint) (models.Category, error) {
	var category models.Category
	if err := database.C.Where("id = ?", id).First(&category).Error; err != nil {
		return category, status.FromGorm(err, "category")
	}
	return category, nil
}

// isTaxonomySlugTaken is a pre-check only; the unique index decides races.
func isTaxonomySlugTaken(model any, slugStr string, excludeID uint) bool {
	var count int64
	tx := database.C.Model(model).Where("slug = ?", slugStr)
	if excludeID > 0 {
		tx = tx.Where("id != ?", excludeID)
	}
	tx.Count(&count)
	return count > 0
}

// NewCategory creates a category. Unlike posts, a taken slug is not suffixed
// away: the caller gets a Conflict and must pick another name or slug.
func NewCategory(name, slugStr, description string) (models.Category, error) {
	if len(slugStr) == 0 {
		slugStr = slug.Generate(name)
	}
	if isTaxonomySlugTaken(&models.Category{}, slugStr, 0) {
		return models.Category{}, status.Conflict("category slug %q is already in use", slugStr)
	}

	category := models.Category{
		Slug:        slugStr,
		Name:        name,
		Description: description,
	}

	if err := database.C.Create(&category).Error; err != nil {
		return category, status.FromGorm(err, "category")
	}

	return category, nil
}

func EditCategory(category models.Category, name, slugStr, description string) (models.Category, error) {
	if len(slugStr) == 0 {
		slugStr = slug.Generate(name)
	}
	if isTaxonomySlugTaken(&models.Category{}, slugStr, category.ID) {
		return category, status.Conflict("category slug %q is already in use", slugStr)
	}

	category.Slug = slugStr
	category.Name = name
	category.Description = description

	if err := database.C.Save(&category).Error; err != nil {
		return category, status.FromGorm(err, "category")
	}

	return category, nil
}

func DeleteCategory(category models.Category) error {
	if err := database.C.Model(&category).Association("Posts").Clear(); err != nil {
		return err
	}
	return database.C.Delete(&category).Error
}

func ListTag(take int, offset int) ([]models.Tag, error) {
	var tags []models.Tag
	err := database.C.Order("name ASC").Offset(offset).Limit(take).Find(&tags).Error

	return tags, err
}

func GetTag(slugStr string) (models.Tag, error) {
	var tag models.Tag
	if err := database.C.Where("slug = ?", slugStr).First(&tag).Error; err != nil {
		return tag, status.FromGorm(err, "tag")
	}
	return tag, nil
}

func GetTagWithID(id uint) (models.Tag, error) {
	var tag models.Tag
	if err := database.C.Where("id = ?", id).First(&tag).Error; err != nil {
		return tag, status.FromGorm(err, "tag")
	}
	return tag, nil
}

func NewTag(name, slugStr string) (models.Tag, error) {
	if len(slugStr) == 0 {
		slugStr = slug.Generate(name)
	}
	if isTaxonomySlugTaken(&models.Tag{}, slugStr, 0) {
		return models.Tag{}, status.Conflict("tag slug %q is already in use", slugStr)
	}

	tag := models.Tag{
		Slug: slugStr,
		Name: name,
	}

	if err := database.C.Create(&tag).Error; err != nil {
		return tag, status.FromGorm(err, "tag")
	}

	return tag, nil
}

func EditTag(tag models.Tag, name, slugStr string) (models.Tag, error) {
	if len(slugStr) == 0 {
		slugStr = slug.Generate(name)
	}
	if isTaxonomySlugTaken(&models.Tag{}, slugStr, tag.ID) {
		return tag, status.Conflict("tag slug %q is already in use", slugStr)
	}

	tag.Slug = slugStr
	tag.Name = name

	if err := database.C.Save(&tag).Error; err != nil {
		return tag, status.FromGorm(err, "tag")
	}

	return tag, nil
}

func DeleteTag(tag models.Tag) error {
	if err := database.C.Model(&tag).Association("Posts").Clear(); err != nil {
		return err
	}
	return database.C.Delete(&tag).Error
}

// GetTagOrCreate resolves a free text tag name to its stored tag, creating
// one on first use. Identity is the normalized slug, so "CSharp" and
// "csharp" land on the same row.
func GetTagOrCreate(name string) (models.Tag, error) {
	name = strings.TrimSpace(name)
	alias := slug.Generate(name)

	var tag models.Tag
	if err := database.C.Where("slug = ?", alias).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{
				Slug: alias,
				Name: name,
			}
			if err := database.C.Create(&tag).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Lost the race against another writer, take theirs.
					err = database.C.Where("slug = ?", alias).First(&tag).Error
				}
				return tag, err
			}
			return tag, nil
		}
		return tag, err
	}
	return tag, nil
}

type CategoryPostCount struct {
	ID          uint   `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PostCount   int64  `json:"post_count"`
}

func ListCategoryWithPostCount(take int, offset int) ([]CategoryPostCount, error) {
	var items []CategoryPostCount
	if err := database.C.Raw(`
		SELECT c.id, c.slug, c.name, c.description, COUNT(p.id) AS post_count
		FROM categories c
		LEFT JOIN post_categories pc ON pc.category_id = c.id
		LEFT JOIN posts p ON p.id = pc.post_id AND p.deleted_at IS NULL AND p.is_draft = false
		WHERE c.deleted_at IS NULL
		GROUP BY c.id
		ORDER BY c.name ASC
		LIMIT ? OFFSET ?
	`, take, offset).Scan(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

func ListPopularCategories(count int) ([]CategoryPostCount, error) {
	var items []CategoryPostCount
	if err := database.C.Raw(`
		SELECT c.id, c.slug, c.name, c.description, COUNT(p.id) AS post_count
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.id
		JOIN posts p ON p.id = pc.post_id AND p.deleted_at IS NULL AND p.is_draft = false
		WHERE c.deleted_at IS NULL
		GROUP BY c.id
		ORDER BY post_count DESC, c.name ASC
		LIMIT ?
	`, count).Scan(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

type TagPostCount struct {
	ID        uint   `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	PostCount int64  `json:"post_count"`
}

func ListTagWithPostCount(take int, offset int) ([]TagPostCount, error) {
	var items []TagPostCount
	if err := database.C.Raw(`
		SELECT t.id, t.slug, t.name, COUNT(p.id) AS post_count
		FROM tags t
		LEFT JOIN post_tags pt ON pt.tag_id = t.id
		LEFT JOIN posts p ON p.id = pt.post_id AND p.deleted_at IS NULL AND p.is_draft = false
		WHERE t.deleted_at IS NULL
		GROUP BY t.id
		ORDER BY t.name ASC
		LIMIT ? OFFSET ?
	`, take, offset).Scan(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

func ListPopularTags(count int) ([]TagPostCount, error) {
	var items []TagPostCount
	if err := database.C.Raw(`
		SELECT t.id, t.slug, t.name, COUNT(p.id) AS post_count
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		JOIN posts p ON p.id = pt.post_id AND p.deleted_at IS NULL AND p.is_draft = false
		WHERE t.deleted_at IS NULL
		GROUP BY t.id
		ORDER BY post_count DESC, t.name ASC
		LIMIT ?
	`, count).Scan(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

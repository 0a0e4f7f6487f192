package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	localCache "github.com/inkroot/inkroot/pkg/internal/cache"
	"github.com/inkroot/inkroot/pkg/internal/database"
	"github.com/inkroot/inkroot/pkg/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxAuthorDrafts caps the number of unpublished blogs one author can hold.
const MaxAuthorDrafts = 4

const blogSlugSuffixLength = 5

var (
	slugStripPattern    = regexp.MustCompile(`[^a-zA-Z0-9]`)
	slugCollapsePattern = regexp.MustCompile(`\s+`)
)

// NewBlogSlug derives a slug from the title: every character outside
// [a-zA-Z0-9] becomes a space, whitespace runs collapse into single hyphens,
// and a short random identifier is appended. The non-random portion is
// re-derived on every call, never cached.
func NewBlogSlug(title string) string {
	normalized := slugStripPattern.ReplaceAllString(title, " ")
	normalized = slugCollapsePattern.ReplaceAllString(normalized, "-")
	return normalized + gonanoid.Must(blogSlugSuffixLength)
}

func FilterBlogDraft(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_draft = ?", false)
}

func FilterBlogWithAuthorDraft(tx *gorm.DB, uid uint) *gorm.DB {
	return tx.Where("author_id = ? AND is_draft = ?", uid, true)
}

func CountAuthorDrafts(uid uint) (int64, error) {
	var count int64
	if err := FilterBlogWithAuthorDraft(database.C.Model(&models.Blog{}), uid).
		Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func GetBlog(tx *gorm.DB, id uint) (models.Blog, error) {
	var item models.Blog
	if err := tx.Preload("Author").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	item.AuthorStamp = item.Author.Stamp()
	return item, nil
}

func GetBlogBySlug(tx *gorm.DB, slug string) (models.Blog, error) {
	var item models.Blog
	if err := tx.Preload("Author").
		Where("slug = ?", slug).
		First(&item).Error; err != nil {
		return item, err
	}

	item.AuthorStamp = item.Author.Stamp()
	return item, nil
}

func CountBlog(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Blog{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListAuthorDrafts(user models.Account) ([]models.Blog, error) {
	var items []models.Blog
	if err := FilterBlogWithAuthorDraft(database.C, user.ID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return items, err
	}

	for idx := range items {
		items[idx].AuthorStamp = user.Stamp()
	}

	return items, nil
}

type recentBlogsPage struct {
	Count int64
	Items []models.Blog
}

// ListRecentBlogs serves the public feed: published blogs only, newest
// first, content truncated. Pages are cached for a short window and the
// whole set is invalidated on any write.
func ListRecentBlogs(take int, offset int) (int64, []models.Blog, error) {
	if take > 50 {
		take = 50
	}

	marshal := marshaler.New(cache.New[any](localCache.S))
	ctx := context.Background()

	pageCacheKey := fmt.Sprintf("blogs-recent#%d,%d", take, offset)
	if pageCache, err := marshal.Get(ctx, pageCacheKey, new(recentBlogsPage)); err == nil {
		page := pageCache.(*recentBlogsPage)
		return page.Count, page.Items, nil
	}

	count, err := CountBlog(FilterBlogDraft(database.C))
	if err != nil {
		return count, nil, err
	}

	var items []models.Blog
	if err := FilterBlogDraft(database.C).
		Preload("Author").
		Limit(take).Offset(offset).
		Order("published_at DESC").
		Find(&items).Error; err != nil {
		return count, items, err
	}

	likes, err := BatchCountBlogLikes(lo.Map(items, func(item models.Blog, index int) uint {
		return item.ID
	}))
	if err != nil {
		return count, items, err
	}

	for idx := range items {
		items[idx].AuthorStamp = items[idx].Author.Stamp()
		items[idx].TotalLikes = likes[items[idx].ID]
		items[idx] = TruncateBlogContent(items[idx])
	}

	ttl := max(viper.GetInt("performance.recent_cache_ttl"), 1)
	_ = marshal.Set(
		ctx,
		pageCacheKey,
		recentBlogsPage{Count: count, Items: items},
		store.WithExpiration(time.Duration(ttl)*time.Second),
		store.WithTags([]string{"blogs-recent"}),
	)

	return count, items, nil
}

func InvalidateRecentBlogs() {
	marshal := marshaler.New(cache.New[any](localCache.S))
	if err := marshal.Invalidate(
		context.Background(),
		store.WithInvalidateTags([]string{"blogs-recent"}),
	); err != nil {
		log.Warn().Err(err).Msg("An error occurred when invalidating recent blogs cache...")
	}
}

// NewBlog persists a freshly composed blog owned by the given author. The
// slug is derived here when the caller did not assign one.
func NewBlog(user models.Account, item models.Blog) (models.Blog, error) {
	if len(item.Slug) == 0 {
		item.Slug = NewBlogSlug(item.Title)
	}
	item.AuthorID = user.ID

	if !item.IsDraft && item.PublishedAt == nil {
		item.PublishedAt = lo.ToPtr(time.Now())
	}

	log.Debug().Str("slug", item.Slug).Bool("draft", item.IsDraft).Msg("Saving a new blog...")
	if err := database.C.Omit(clause.Associations).Create(&item).Error; err != nil {
		return item, err
	}

	InvalidateRecentBlogs()
	item.AuthorStamp = user.Stamp()
	return item, nil
}

// UpdateBlogBySlug overwrites the editable fields of the blog matching the
// slug. The matched count is returned so callers can tell a real mutation
// from a no-op.
func UpdateBlogBySlug(slug string, changes map[string]any) (int64, error) {
	res := database.C.Model(&models.Blog{}).
		Where("slug = ?", slug).
		Updates(changes)
	if res.Error != nil {
		return res.RowsAffected, res.Error
	}

	InvalidateRecentBlogs()
	return res.RowsAffected, nil
}

// PublishBlog clears the draft flag and stamps the publication time.
func PublishBlog(item models.Blog) (models.Blog, error) {
	item.IsDraft = false
	if item.PublishedAt == nil {
		item.PublishedAt = lo.ToPtr(time.Now())
	}

	if err := database.C.Omit(clause.Associations).Save(&item).Error; err != nil {
		return item, err
	}

	InvalidateRecentBlogs()
	return item, nil
}

// DeleteBlogBySlug removes the blog matching the slug for real, along with
// its like rows. The matched count is returned like in UpdateBlogBySlug.
func DeleteBlogBySlug(slug string) (int64, error) {
	var item models.Blog
	if err := database.C.Where("slug = ?", slug).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	res := database.C.Delete(&item)
	if res.Error != nil {
		return res.RowsAffected, res.Error
	}

	database.C.Where("blog_id = ?", item.ID).Delete(&models.Like{})
	database.C.Where("blog_id = ?", item.ID).Delete(&models.BlogView{})

	InvalidateRecentBlogs()
	return res.RowsAffected, nil
}

const TruncateBlogContentThreshold = 160

// TruncateBlogContent shortens the rich-text body for list responses. The
// content is opaque to the backend, so this cuts on runes only.
func TruncateBlogContent(blog models.Blog) models.Blog {
	if val := []rune(blog.Content); len(val) >= TruncateBlogContentThreshold {
		blog.Content = string(val[:TruncateBlogContentThreshold]) + "..."
	}

	return blog
}

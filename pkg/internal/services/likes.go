package services

import (
	"errors"

	"github.com/inkroot/inkroot/pkg/internal/database"
	"github.com/inkroot/inkroot/pkg/internal/models"
	"gorm.io/gorm"
)

// LikeBlog flips the caller's like state on a blog. It reports true when the
// blog ends up liked and false when the existing like was withdrawn.
func LikeBlog(user models.Account, blog models.Blog) (bool, error) {
	var like models.Like
	if err := database.C.
		Where("account_id = ? AND blog_id = ?", user.ID, blog.ID).
		First(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			like = models.Like{
				AccountID: user.ID,
				BlogID:    blog.ID,
			}
			return true, database.C.Create(&like).Error
		}
		return false, err
	}

	return false, database.C.Delete(&like).Error
}

func HasLikedBlog(uid uint, blogId uint) bool {
	var count int64
	if err := database.C.Model(&models.Like{}).
		Where("account_id = ? AND blog_id = ?", uid, blogId).
		Count(&count).Error; err != nil {
		return false
	}

	return count > 0
}

func CountBlogLikes(blogId uint) int64 {
	var count int64
	if err := database.C.Model(&models.Like{}).
		Where("blog_id = ?", blogId).
		Count(&count).Error; err != nil {
		return 0
	}

	return count
}

func BatchCountBlogLikes(idx []uint) (map[uint]int64, error) {
	result := map[uint]int64{}
	if len(idx) == 0 {
		return result, nil
	}

	var likes []struct {
		BlogID uint
		Count  int64
	}
	if err := database.C.Model(&models.Like{}).
		Select("blog_id, COUNT(account_id) as count").
		Where("blog_id IN ?", idx).
		Group("blog_id").
		Scan(&likes).Error; err != nil {
		return result, err
	}

	for _, info := range likes {
		result[info.BlogID] = info.Count
	}

	return result, nil
}

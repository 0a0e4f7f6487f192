package services

import (
	"sync"

	"github.com/inkroot/inkroot/pkg/internal/database"
	"github.com/inkroot/inkroot/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	blogViewQueueLock sync.Mutex
	blogViewQueue     []models.BlogView
)

// AddBlogView queues a view record; the queue is flushed in batches by a
// timed task so reads never wait on the write path.
func AddBlogView(blog models.Blog, account uint) {
	blogViewQueueLock.Lock()
	defer blogViewQueueLock.Unlock()

	blogViewQueue = append(blogViewQueue, models.BlogView{
		AccountID: account,
		BlogID:    blog.ID,
	})
}

func FlushBlogViews() {
	blogViewQueueLock.Lock()
	if len(blogViewQueue) == 0 {
		blogViewQueueLock.Unlock()
		return
	}
	workingQueue := blogViewQueue
	blogViewQueue = nil
	blogViewQueueLock.Unlock()

	if err := database.C.CreateInBatches(workingQueue, 1000).Error; err != nil {
		log.Warn().Err(err).Msg("An error occurred when flushing blog views...")
	}

	updateRequiredBlog := make(map[uint]bool)
	for _, item := range workingQueue {
		updateRequiredBlog[item.BlogID] = true
	}

	for k := range updateRequiredBlog {
		var count int64
		if err := database.C.Model(&models.BlogView{}).Where("blog_id = ?", k).Count(&count).Error; err != nil {
			continue
		}
		database.C.Model(&models.Blog{}).Where("id = ?", k).Update("total_views", count)
	}
}

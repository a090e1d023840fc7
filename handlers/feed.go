package handlers

import (
	"io"
	"net/http"
	"strconv"

	"feedboard/services"

	"github.com/gin-gonic/gin"
)

type Feed struct {
	svc *services.Feed
}

func NewFeed(svc *services.Feed) *Feed {
	return &Feed{svc: svc}
}

// PostForm is the multipart body for create and update. On update the
// image field carries the kept reference when no new file is uploaded.
type PostForm struct {
	Title   string `form:"title" binding:"required,min=5"`
	Content string `form:"content" binding:"required,min=5"`
	Image   string `form:"image"`
}

func (h *Feed) GetPosts(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			page = n
		}
	}

	posts, total, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Fetched posts successfully.",
		"posts":      posts,
		"totalItems": total,
	})
}

func (h *Feed) CreatePost(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, bindingError(err))
		return
	}

	image, imageName := formImage(c)
	if image != nil {
		defer image.Close()
	}

	post, err := h.svc.Create(c.Request.Context(), c.GetString("userId"), form.Title, form.Content, readerOrNil(image), imageName)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully!",
		"post":    post,
		"creator": post.Creator,
	})
}

func (h *Feed) GetPost(c *gin.Context) {
	post, err := h.svc.Get(c.Request.Context(), c.Param("postId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post fetched.",
		"post":    post,
	})
}

func (h *Feed) UpdatePost(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, bindingError(err))
		return
	}

	image, imageName := formImage(c)
	if image != nil {
		defer image.Close()
	}

	post, err := h.svc.Update(c.Request.Context(), c.Param("postId"), c.GetString("userId"),
		form.Title, form.Content, readerOrNil(image), imageName, form.Image)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated!",
		"post":    post,
	})
}

func (h *Feed) DeletePost(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("postId"), c.GetString("userId")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted post."})
}

// formImage pulls the uploaded image part out of the multipart body, if
// one was sent.
func formImage(c *gin.Context) (io.ReadCloser, string) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return nil, ""
	}
	return file, header.Filename
}

// readerOrNil keeps a nil ReadCloser from turning into a non-nil
// io.Reader interface value.
func readerOrNil(rc io.ReadCloser) io.Reader {
	if rc == nil {
		return nil
	}
	return rc
}

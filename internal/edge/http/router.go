package http

import (
	"github.com/gin-gonic/gin"

	"github.com/chirino/forumcore/internal/config"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/repository"
	"github.com/chirino/forumcore/internal/security"
)

// NewRouter assembles the REST surface over repo/ec, wiring the same
// middleware chain order the teacher uses for its plugin routes:
// recovery, access log, metrics, auth, then the handler.
func NewRouter(cfg *config.Config, resolver *security.TokenResolver, repo *repository.Repository, ec *entitycollection.EntityCollection, version string) *gin.Engine {
	d := Deps{Repo: repo, EC: ec, Version: version}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(security.AccessLogMiddleware("/healthz"))
	r.Use(security.MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) { c.Status(200) })

	v1 := r.Group("/v1")
	v1.Use(security.AuthMiddleware(resolver))
	v1.Use(security.AdminAuditMiddleware(cfg.RequireJustification))

	users := v1.Group("/users")
	users.POST("", d.registerUser)
	users.GET("/:id", d.getUser)
	users.PATCH("/me", d.renameCurrentUser)
	users.DELETE("/:id", d.deleteUser)

	threads := v1.Group("/threads")
	threads.POST("", d.createThread)
	threads.GET("", d.listThreads)
	threads.GET("/:id", d.getThread)
	threads.PATCH("/:id", d.renameThread)
	threads.DELETE("/:id", d.deleteThread)
	threads.POST("/:id/subscribe", d.subscribeThread)
	threads.DELETE("/:id/subscribe", d.unsubscribeThread)
	threads.POST("/:id/tags/:tagId", d.attachTagToThread)
	threads.DELETE("/:id/tags/:tagId", d.detachTagFromThread)
	threads.PUT("/:id/privileges/:privilege", d.assignThreadPrivilege)

	threads.POST("/:id/messages", d.createMessage)
	threads.GET("/:id/messages", d.listThreadMessages)

	messages := v1.Group("/messages")
	messages.PATCH("/:messageId", d.editMessage)
	messages.DELETE("/:messageId", d.deleteMessage)
	messages.POST("/:messageId/upvote", d.upVoteMessage)
	messages.POST("/:messageId/downvote", d.downVoteMessage)
	messages.DELETE("/:messageId/vote", d.resetVoteMessage)
	messages.PUT("/:messageId/privileges/:privilege", d.assignMessagePrivilege)
	messages.POST("/:messageId/comments", d.addMessageComment)
	messages.GET("/:messageId/comments", d.listMessageComments)
	messages.POST("/:messageId/comments/:commentId/solve", d.solveMessageComment)

	users.POST("/:id/messages", d.sendPrivateMessage)
	v1.GET("/private-messages/sent", d.listSentPrivateMessages)
	v1.GET("/private-messages/received", d.listReceivedPrivateMessages)

	tags := v1.Group("/tags")
	tags.POST("", d.createTag)
	tags.GET("", d.listTags)
	tags.PATCH("/:id", d.renameTag)
	tags.PUT("/:id/ui", d.changeTagUIBlob)
	tags.DELETE("/:id", d.deleteTag)
	tags.POST("/:id/merge", d.mergeTags)
	tags.PUT("/:id/privileges/:privilege", d.assignTagPrivilege)

	categories := v1.Group("/categories")
	categories.POST("", d.createCategory)
	categories.GET("", d.listCategories)
	categories.PATCH("/:id", d.renameCategory)
	categories.PUT("/:id/description", d.changeCategoryDescription)
	categories.PUT("/:id/display-order", d.changeCategoryDisplayOrder)
	categories.PUT("/:id/parent", d.changeCategoryParent)
	categories.DELETE("/:id", d.deleteCategory)
	categories.POST("/:id/tags/:tagId", d.attachTagToCategory)
	categories.DELETE("/:id/tags/:tagId", d.detachTagFromCategory)
	categories.PUT("/:id/privileges/:privilege", d.assignCategoryPrivilege)

	v1.PUT("/forum/privileges/:privilege", d.assignForumWidePrivilege)
	v1.GET("/stats/entities", d.getEntitiesCount)
	v1.GET("/version", d.getVersion)

	return r
}

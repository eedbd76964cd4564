package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/insuranceguard/insuranceguard/internal/types"
)

// HeaderActorID carries the staff member acting on behalf of the request.
// The audit log attributes every mutation to it.
const HeaderActorID = "X-Actor-ID"

// ActorMiddleware resolves the acting staff member into the request
// context. Requests without the header are attributed to the system actor.
func ActorMiddleware(c *gin.Context) {
	actorID := c.GetHeader(HeaderActorID)
	if actorID == "" {
		actorID = types.DefaultActorID
	}

	ctx := types.WithActorID(c.Request.Context(), actorID)
	c.Request = c.Request.WithContext(ctx)

	c.Next()
}

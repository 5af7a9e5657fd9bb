package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"collabhub/internal/apperror"
	"collabhub/internal/broadcast"
	"collabhub/internal/model"
	"collabhub/pkg/util"
)

var wsUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// CommentStreamHandler serves the live comment channel: one websocket per
// observer, scoped to a single project.
type CommentStreamHandler struct {
	registry *broadcast.Registry
	logger   *zap.Logger
}

// NewCommentStreamHandler creates a new comment stream handler
func NewCommentStreamHandler(registry *broadcast.Registry, logger *zap.Logger) *CommentStreamHandler {
	return &CommentStreamHandler{registry: registry, logger: logger}
}

// wsObserver adapts a websocket connection to the broadcast.Observer
// contract. Gorilla connections do not support concurrent writers, so sends
// are serialized by a per-observer mutex.
type wsObserver struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (o *wsObserver) Send(ev broadcast.Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conn.WriteJSON(ev)
}

// Stream handles GET /ws/comments/:id. The connection is registered as an
// observer of the project and blocks reading until the peer goes away; the
// deferred unsubscribe runs on every exit path, including abnormal closes,
// so a dropped connection never leaks a registry slot.
func (h *CommentStreamHandler) Stream(c *gin.Context) {
	objID, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			model.NewErrorResponse("Invalid project ID format", apperror.CodeInvalidID))
		return
	}
	// Subscribe under the canonical hex so broadcasts find this observer
	// regardless of how the peer spelled the id in the path.
	projectID := objID.Hex()

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	obs := &wsObserver{conn: conn}
	h.registry.Subscribe(projectID, obs)
	defer h.registry.Unsubscribe(projectID, obs)

	h.logger.Debug("observer connected", zap.String("project_id", projectID))

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Debug("observer closed unexpectedly",
					zap.String("project_id", projectID),
					zap.Error(err),
				)
			}
			return
		}
	}
}

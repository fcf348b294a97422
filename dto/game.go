package dto

import "github.com/gorilla/websocket"

type ConnInterface interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type RealConn struct {
	*websocket.Conn
}

func (r *RealConn) WriteMessage(messageType int, data []byte) error {
	return r.Conn.WriteMessage(messageType, data)
}

func (r *RealConn) Close() error {
	return r.Conn.Close()
}

// PlayerConn 玩家连接对象
type PlayerConn struct {
	PlayerID string
	Conn     ConnInterface
	Online   bool
}

// 服务端推送的消息类型
const (
	MsgTypeInit   = "init"
	MsgTypeSync   = "sync"
	MsgTypeResult = "result"
	MsgTypeError  = "error"
)

// 客户端发来的消息类型，另外 "sync" 表示请求一次全量同步
const MsgTypeAction = "action"

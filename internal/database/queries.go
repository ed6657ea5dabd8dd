package database

import (
	"time"

	"github.com/google/uuid"
)

func now() time.Time {
	return time.Now().UTC().Round(time.Microsecond)
}

const userColumns = "id, name, handle, created_date, last_updated_date"

func (db *PgChattyRepository) CreateUser(params CreateUserParams) (User, error) {
	ts := now()
	res := db.conn.QueryRow(
		"INSERT INTO users (id, name, handle, created_date, last_updated_date) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING "+userColumns,
		uuid.NewString(),
		params.Name,
		params.Handle,
		ts,
		ts,
	)

	var u User
	err := res.Scan(&u.Id, &u.Name, &u.Handle, &u.CreatedDate, &u.LastUpdatedDate)

	return u, err
}

func (db *PgChattyRepository) GetUserById(userId string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE id = $1 LIMIT 1",
		userId,
	)

	var u User
	err := row.Scan(&u.Id, &u.Name, &u.Handle, &u.CreatedDate, &u.LastUpdatedDate)

	return u, err
}

func (db *PgChattyRepository) ListUsers() ([]User, error) {
	rows, err := db.conn.Query("SELECT " + userColumns + " FROM users ORDER BY created_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users = make([]User, 0)
	for rows.Next() {
		var u User
		if err = rows.Scan(&u.Id, &u.Name, &u.Handle, &u.CreatedDate, &u.LastUpdatedDate); err != nil {
			break
		}

		users = append(users, u)
	}

	return users, err
}

func (db *PgChattyRepository) UpdateUser(params UpdateUserParams) (User, error) {
	res := db.conn.QueryRow(
		"UPDATE users SET name = $2, handle = $3, last_updated_date = $4 "+
			"WHERE id = $1 RETURNING "+userColumns,
		params.UserId,
		params.Name,
		params.Handle,
		now(),
	)

	var u User
	err := res.Scan(&u.Id, &u.Name, &u.Handle, &u.CreatedDate, &u.LastUpdatedDate)

	return u, err
}

func (db *PgChattyRepository) DeleteUser(userId string) error {
	_, err := db.conn.Exec("DELETE FROM users WHERE id = $1", userId)

	return err
}

func (db *PgChattyRepository) ListChatroomsForUser(userId string) ([]UserChatroom, error) {
	rows, err := db.conn.Query(
		"SELECT c.id, c.name, c.created_date, c.last_updated_date, p.created_date "+
			"FROM chatroom_participants p JOIN chatrooms c ON c.id = p.chatroom_id "+
			"WHERE p.user_id = $1 ORDER BY p.created_date",
		userId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chatrooms = make([]UserChatroom, 0)
	for rows.Next() {
		var c UserChatroom
		if err = rows.Scan(&c.Id, &c.Name, &c.CreatedDate, &c.LastUpdatedDate, &c.JoinedDate); err != nil {
			break
		}

		chatrooms = append(chatrooms, c)
	}

	return chatrooms, err
}

const chatroomColumns = "id, name, created_date, last_updated_date"

func (db *PgChattyRepository) CreateChatroom(name string) (Chatroom, error) {
	ts := now()
	res := db.conn.QueryRow(
		"INSERT INTO chatrooms (id, name, created_date, last_updated_date) "+
			"VALUES ($1, $2, $3, $4) RETURNING "+chatroomColumns,
		uuid.NewString(),
		name,
		ts,
		ts,
	)

	var c Chatroom
	err := res.Scan(&c.Id, &c.Name, &c.CreatedDate, &c.LastUpdatedDate)

	return c, err
}

func (db *PgChattyRepository) GetChatroomById(chatroomId string) (Chatroom, error) {
	row := db.conn.QueryRow(
		"SELECT "+chatroomColumns+" FROM chatrooms WHERE id = $1 LIMIT 1",
		chatroomId,
	)

	var c Chatroom
	err := row.Scan(&c.Id, &c.Name, &c.CreatedDate, &c.LastUpdatedDate)

	return c, err
}

func (db *PgChattyRepository) ListChatrooms() ([]Chatroom, error) {
	rows, err := db.conn.Query("SELECT " + chatroomColumns + " FROM chatrooms ORDER BY created_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chatrooms = make([]Chatroom, 0)
	for rows.Next() {
		var c Chatroom
		if err = rows.Scan(&c.Id, &c.Name, &c.CreatedDate, &c.LastUpdatedDate); err != nil {
			break
		}

		chatrooms = append(chatrooms, c)
	}

	return chatrooms, err
}

func (db *PgChattyRepository) UpdateChatroom(chatroomId, name string) (Chatroom, error) {
	res := db.conn.QueryRow(
		"UPDATE chatrooms SET name = $2, last_updated_date = $3 "+
			"WHERE id = $1 RETURNING "+chatroomColumns,
		chatroomId,
		name,
		now(),
	)

	var c Chatroom
	err := res.Scan(&c.Id, &c.Name, &c.CreatedDate, &c.LastUpdatedDate)

	return c, err
}

func (db *PgChattyRepository) DeleteChatroom(chatroomId string) error {
	_, err := db.conn.Exec("DELETE FROM chatrooms WHERE id = $1", chatroomId)

	return err
}

func (db *PgChattyRepository) ListUsersForChatroom(chatroomId string) ([]User, error) {
	rows, err := db.conn.Query(
		"SELECT u.id, u.name, u.handle, u.created_date, u.last_updated_date "+
			"FROM chatroom_participants p JOIN users u ON u.id = p.user_id "+
			"WHERE p.chatroom_id = $1 ORDER BY p.created_date",
		chatroomId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users = make([]User, 0)
	for rows.Next() {
		var u User
		if err = rows.Scan(&u.Id, &u.Name, &u.Handle, &u.CreatedDate, &u.LastUpdatedDate); err != nil {
			break
		}

		users = append(users, u)
	}

	return users, err
}

const participantColumns = "id, user_id, chatroom_id, created_date, last_updated_date"

func (db *PgChattyRepository) CreateParticipant(userId, chatroomId string) (Participant, error) {
	ts := now()
	res := db.conn.QueryRow(
		"INSERT INTO chatroom_participants (id, user_id, chatroom_id, created_date, last_updated_date) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING "+participantColumns,
		uuid.NewString(),
		userId,
		chatroomId,
		ts,
		ts,
	)

	var p Participant
	err := res.Scan(&p.Id, &p.UserId, &p.ChatroomId, &p.CreatedDate, &p.LastUpdatedDate)

	return p, err
}

func (db *PgChattyRepository) ParticipantExists(userId, chatroomId string) bool {
	res := db.conn.QueryRow(
		"SELECT id FROM chatroom_participants WHERE user_id = $1 AND chatroom_id = $2 LIMIT 1",
		userId,
		chatroomId,
	)

	var id string
	return res.Scan(&id) == nil
}

func (db *PgChattyRepository) DeleteParticipant(userId, chatroomId string) error {
	_, err := db.conn.Exec(
		"DELETE FROM chatroom_participants WHERE user_id = $1 AND chatroom_id = $2",
		userId,
		chatroomId,
	)

	return err
}

const messageColumns = "id, message_text, user_id, chatroom_id, is_reply, parent_message_id, created_date, last_updated_date"

func (db *PgChattyRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	ts := now()
	res := db.conn.QueryRow(
		"INSERT INTO messages (id, message_text, user_id, chatroom_id, is_reply, parent_message_id, created_date, last_updated_date) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING "+messageColumns,
		uuid.NewString(),
		params.MessageText,
		params.UserId,
		params.ChatroomId,
		params.IsReply,
		params.ParentMessageId,
		ts,
		ts,
	)

	var m Message
	err := res.Scan(&m.Id, &m.MessageText, &m.UserId, &m.ChatroomId, &m.IsReply,
		&m.ParentMessageId, &m.CreatedDate, &m.LastUpdatedDate)

	return m, err
}

func (db *PgChattyRepository) GetMessageById(messageId string) (Message, error) {
	row := db.conn.QueryRow(
		"SELECT "+messageColumns+" FROM messages WHERE id = $1 LIMIT 1",
		messageId,
	)

	var m Message
	err := row.Scan(&m.Id, &m.MessageText, &m.UserId, &m.ChatroomId, &m.IsReply,
		&m.ParentMessageId, &m.CreatedDate, &m.LastUpdatedDate)

	return m, err
}

func (db *PgChattyRepository) ListMessagesByChatroom(chatroomId string) ([]Message, error) {
	rows, err := db.conn.Query(
		"SELECT "+messageColumns+" FROM messages WHERE chatroom_id = $1 ORDER BY created_date",
		chatroomId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages = make([]Message, 0)
	for rows.Next() {
		var m Message
		if err = rows.Scan(&m.Id, &m.MessageText, &m.UserId, &m.ChatroomId, &m.IsReply,
			&m.ParentMessageId, &m.CreatedDate, &m.LastUpdatedDate); err != nil {
			break
		}

		messages = append(messages, m)
	}

	return messages, err
}

func (db *PgChattyRepository) UpdateMessageText(messageId, text string) (Message, error) {
	res := db.conn.QueryRow(
		"UPDATE messages SET message_text = $2, last_updated_date = $3 "+
			"WHERE id = $1 RETURNING "+messageColumns,
		messageId,
		text,
		now(),
	)

	var m Message
	err := res.Scan(&m.Id, &m.MessageText, &m.UserId, &m.ChatroomId, &m.IsReply,
		&m.ParentMessageId, &m.CreatedDate, &m.LastUpdatedDate)

	return m, err
}

func (db *PgChattyRepository) DeleteMessage(messageId string) error {
	_, err := db.conn.Exec("DELETE FROM messages WHERE id = $1", messageId)

	return err
}

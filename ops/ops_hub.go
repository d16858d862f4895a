package ops

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/andresgluna/parkwash-app/models"
)

// Event types
const (
	EventSpotUpdate      = "spot_update"
	EventSpotCreate      = "spot_create"
	EventSpotDelete      = "spot_delete"
	EventTicketCreate    = "ticket_create"
	EventTicketUpdate    = "ticket_update"
	EventWashUpdate      = "wash_update"
	EventPaymentUpdate   = "payment_update"
	EventPaymentPaid     = "payment_paid"
	EventReceiptUpdate   = "receipt_generated"
	EventStaffNotif      = "staff_notification"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// OpsHub menampung semua client operasional (kasir, supervisor, admin)
// dan menyiarkan event spot/ticket/wash/payment secara real-time.
type OpsHub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var opsHub = OpsHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	opsHub.mutex.Lock()
	defer opsHub.mutex.Unlock()
	opsHub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	opsHub.mutex.Lock()
	defer opsHub.mutex.Unlock()
	delete(opsHub.clients, conn)
	conn.Close()
}

// BroadcastSpotUpdate -> update status spot/bay
func BroadcastSpotUpdate(spot models.Spot) {
	broadcast(Message{
		Event: EventSpotUpdate,
		Data:  spot,
	})
}

// BroadcastSpotCreate -> spot baru dibuat
func BroadcastSpotCreate(spot models.Spot) {
	broadcast(Message{
		Event: EventSpotCreate,
		Data:  spot,
	})
}

// BroadcastSpotDelete -> spot dihapus
func BroadcastSpotDelete(spot models.Spot) {
	broadcast(Message{
		Event: EventSpotDelete,
		Data:  spot,
	})
}

// BroadcastTicketCreate -> kendaraan masuk
func BroadcastTicketCreate(ticket models.Ticket) {
	broadcast(Message{
		Event: EventTicketCreate,
		Data:  ticket,
	})
}

// BroadcastTicketUpdate -> perubahan status ticket (exit, cancel)
func BroadcastTicketUpdate(ticket models.Ticket) {
	broadcast(Message{
		Event: EventTicketUpdate,
		Data:  ticket,
	})
}

// BroadcastWashUpdate -> perubahan wash order untuk display antrian
func BroadcastWashUpdate(order models.WashOrder) {
	broadcast(Message{
		Event: EventWashUpdate,
		Data:  order,
	})
}

// BroadcastPaymentUpdate -> update status pembayaran
func BroadcastPaymentUpdate(payment models.Payment) {
	broadcast(Message{
		Event: EventPaymentUpdate,
		Data:  payment,
	})
}

// BroadcastPaymentPaid -> pembayaran lunas
func BroadcastPaymentPaid(payment models.Payment) {
	broadcast(Message{
		Event: EventPaymentPaid,
		Data:  payment,
	})
}

// BroadcastReceiptGenerated -> struk dibuat
func BroadcastReceiptGenerated(receipt models.Receipt) {
	broadcast(Message{
		Event: EventReceiptUpdate,
		Data:  receipt,
	})
}

// BroadcastStaffNotification -> notifikasi untuk staff
func BroadcastStaffNotification(message string) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

// BroadcastDashboardUpdate -> update dashboard
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  data,
	})
}

// BroadcastMessage -> broadcast pesan umum
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

// broadcast -> fungsi internal untuk mengirim pesan
func broadcast(msg Message) {
	opsHub.mutex.Lock()
	defer opsHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range opsHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client (role %s): %v", role, err)
			continue
		}
	}
}

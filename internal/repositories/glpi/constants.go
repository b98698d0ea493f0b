package glpi

// Campos de Ticket usados pelo dashboard
const (
	FieldLevel      = 8
	FieldStatus     = 12
	FieldCreated    = 15
	FieldTechnician = 5
)

// Campos de User (buscas auxiliares)
const (
	FieldUserName      = 1
	FieldUserID        = 2
	FieldUserActive    = 8
	FieldUserFirstName = 9
	FieldUserGroup     = 13
	FieldUserRealName  = 34
)

// Campos de Ticket exibidos na lista de tickets novos
const (
	FieldTicketTitle       = 1
	FieldTicketID          = 2
	FieldTicketRequester   = 4
	FieldTicketRecipient   = 6
	FieldTicketLastUpdater = 71
)

// AlternateTechnicianField is the field name some GLPI deployments expose
// instead of the numeric technician field.
const AlternateTechnicianField = "users_id_assign"

// Item types
const (
	ItemTicket = "Ticket"
	ItemUser   = "User"
)

// Status de Ticket
const (
	StatusNew        = 1
	StatusAssigned   = 2
	StatusPlanned    = 3
	StatusInProgress = 4
	StatusSolved     = 5
	StatusClosed     = 6
)

// AllStatuses lists every ticket status in id order.
var AllStatuses = []int{
	StatusNew,
	StatusAssigned,
	StatusPlanned,
	StatusInProgress,
	StatusSolved,
	StatusClosed,
}

// MaxRowsPerRequest is the largest row window a single search may ask for.
const MaxRowsPerRequest = 1000

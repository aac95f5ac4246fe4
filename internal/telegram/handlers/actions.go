package handlers

// Callback action identifiers. Telebot encodes callback data as
// "\f<unique>|<payload>"; the registry routes on the unique part and the
// payload carries the application id where one is needed, so each action is
// parsed exactly once at the transport boundary.
const (
	actApply  = "apply"
	actMyApps = "my_apps"
	actMenu   = "menu"
	actCancel = "cancel"

	actAdminAll     = "adm_all"
	actAdminPending = "adm_pending"
	actAdminStats   = "adm_stats"

	actView   = "view"
	actAccept = "accept"
	actReject = "reject"
	actReply  = "reply"
)

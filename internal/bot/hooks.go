package bot

import (
	"sync"
	"time"

	"seina-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// ReadyHook runs once after the gateway reports ready. Cogs register hooks
// from init() to resume background work persisted in storage, the same way
// they register commands.
type ReadyHook struct {
	Name string
	Run  func(s *discordgo.Session, store *storage.Storage)
}

// MaintenanceTask runs on a fixed interval from the runtime scheduler.
type MaintenanceTask struct {
	Name     string
	Interval time.Duration
	Run      func(s *discordgo.Session, store *storage.Storage)
}

var (
	hooksMu          sync.Mutex
	readyHooks       []ReadyHook
	maintenanceTasks []MaintenanceTask
)

// OnReady registers a hook to run once the session is ready.
func OnReady(h ReadyHook) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	readyHooks = append(readyHooks, h)
}

// ReadyHooks returns the registered ready hooks.
func ReadyHooks() []ReadyHook {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	return append([]ReadyHook(nil), readyHooks...)
}

// AddMaintenanceTask registers a periodic task with the runtime scheduler.
func AddMaintenanceTask(t MaintenanceTask) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	maintenanceTasks = append(maintenanceTasks, t)
}

// MaintenanceTasks returns the registered periodic tasks.
func MaintenanceTasks() []MaintenanceTask {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	return append([]MaintenanceTask(nil), maintenanceTasks...)
}

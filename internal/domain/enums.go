package domain

type TemplateCategory string

const (
	CategoryKitchen    TemplateCategory = "kitchen"
	CategoryBathroom   TemplateCategory = "bathroom"
	CategoryFlooring   TemplateCategory = "flooring"
	CategoryPainting   TemplateCategory = "painting"
	CategoryElectrical TemplateCategory = "electrical"
	CategoryPlumbing   TemplateCategory = "plumbing"
	CategoryFullUnit   TemplateCategory = "full_unit"
	CategoryGeneral    TemplateCategory = "general"
)

type TemplateScope string

const (
	ScopeUnit TemplateScope = "unit"
	ScopeRoom TemplateScope = "room"
)

// DependencyType is one of the four standard precedence relationship types.
type DependencyType string

const (
	FinishToStart  DependencyType = "FS"
	StartToStart   DependencyType = "SS"
	FinishToFinish DependencyType = "FF"
	StartToFinish  DependencyType = "SF"
)

type GateLevel string

const (
	GatePhase   GateLevel = "phase"
	GatePackage GateLevel = "package"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskSkipped    TaskStatus = "skipped"
)

// ValidTemplateCategories is the canonical set of accepted category strings.
var ValidTemplateCategories = map[string]bool{
	"kitchen": true, "bathroom": true, "flooring": true, "painting": true,
	"electrical": true, "plumbing": true, "full_unit": true, "general": true,
}

// ValidTradeCategories is the canonical set of accepted trade strings.
var ValidTradeCategories = map[string]bool{
	"painting": true, "carpentry": true, "electrical": true, "plumbing": true,
	"hvac": true, "tiling": true, "flooring": true, "drywall": true,
	"demolition": true, "cleaning": true, "general": true,
}

// ValidDependencyTypes maps the accepted dependency type codes.
var ValidDependencyTypes = map[string]bool{
	"FS": true, "SS": true, "FF": true, "SF": true,
}

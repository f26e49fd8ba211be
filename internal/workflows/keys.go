// Package workflows holds the concrete bulk operations frota runs against
// each portal. Every workflow is a services.StepWorkflow whose locators come
// from the portal profile under the keys below.
package workflows

// Fleet portal: vehicle groups screen
const (
	KeyGroupCell           = "group_cell"
	KeyGroupEdit           = "group_edit"
	KeyGroupMemberCheckbox = "group_member_checkbox"
	KeyGroupMemberRow      = "group_member_row"
	KeyGroupModal          = "group_modal"
	KeyGroupModalSearch    = "group_modal_search"
	KeyGroupSave           = "group_save"
	KeyGroupSearch         = "group_search"
)

// Fleet portal: vehicles screen
const (
	KeyVehicleActions       = "vehicle_actions"
	KeyVehicleCancel        = "vehicle_cancel"
	KeyVehicleDescription   = "vehicle_description"
	KeyVehicleEdit          = "vehicle_edit"
	KeyVehicleForm          = "vehicle_form"
	KeyVehicleGroupCheckbox = "vehicle_group_checkbox"
	KeyVehicleGroupSearch   = "vehicle_group_search"
	KeyVehicleGroupsTab     = "vehicle_groups_tab"
	KeyVehiclePlate         = "vehicle_plate"
	KeyVehicleResult        = "vehicle_result"
	KeyVehicleSave          = "vehicle_save"
	KeyVehicleSearch        = "vehicle_search"
	KeyVehicleVIN           = "vehicle_vin"
	KeyVehiclesFilter       = "vehicles_filter"
	KeyVehiclesFilterAll    = "vehicles_filter_all"
	KeyVehiclesMenu         = "vehicles_menu"
)

// Fleet portal: odometer adjustment
const (
	KeyOdometerAdd       = "odometer_add"
	KeyOdometerClose     = "odometer_close"
	KeyOdometerDefine    = "odometer_define"
	KeyOdometerStartTime = "odometer_start_time"
	KeyOdometerTab       = "odometer_tab"
	KeyOdometerValue     = "odometer_value"
	KeyUnitController    = "unit_controller"
)

// Billing portal
const (
	KeyContractRows       = "contract_rows"
	KeyContractSearch     = "contract_search"
	KeyContractStatus     = "contract_status"
	KeyContractTable      = "contract_table"
	KeyContractTerminate  = "contract_terminate"
	KeyTerminationConfirm = "termination_confirm"
	KeyTerminationDate    = "termination_date"
)

// Subscriptions portal
const (
	KeySubscriptionConfirm      = "subscription_confirm"
	KeySubscriptionDeinstall    = "subscription_deinstall"
	KeySubscriptionLocation     = "subscription_location"
	KeySubscriptionRows         = "subscription_rows"
	KeySubscriptionSearch       = "subscription_search"
	KeySubscriptionSearchButton = "subscription_search_button"
	KeySubscriptionStatus       = "subscription_status"
	KeySubscriptionTable        = "subscription_table"
)

// Portal pages and labels
const (
	LabelContractActive     = "contract_active"
	LabelLocation           = "location"
	LabelSubscriptionActive = "subscription_active"
	PageContracts           = "contracts"
	PageSubscriptions       = "subscriptions"
	PageVehicleGroups       = "vehicle_groups"
	PageVehicles            = "vehicles"
)

// varTerm holds whichever identifier found the vehicle in the search grid
const varTerm = "term"

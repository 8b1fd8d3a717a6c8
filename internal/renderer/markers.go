package renderer

// Class names and id suffixes assigned to the elements the renderer emits.
// Stylesheets and scripts select on these, so they must not change.
const (
	ClassModuleAPIDocs     = "module_api_docs"
	IDModuleAPIDocs        = "_module_api_docs"
	ClassModuleDescription = "module_description"
	ClassAPIReference      = "api_reference"
	ClassAPIHeader         = "api_header"
	ClassComponentGroup    = "api_component_group"
	ClassComponent         = "api_component"
	ClassAPIName           = "api_name"
	ClassDatatype          = "datatype"
	ClassParameterSet      = "parameter_set"
	ClassReturns           = "returns"
)

// Group titles.
const (
	GroupClasses      = "Classes"
	GroupConstructors = "Constructors"
	GroupMethods      = "Methods"
	GroupFunctions    = "Functions"
	GroupProperties   = "Properties"
	GroupEvents       = "Events"
)

package router

// Console paths, one per administrative page.
const (
	DataSourcePath = "/datasource"
	VariablesPath  = "/system-variables"
	MissionsPath   = "/workflow-management"
	RunLogsPath    = "/run-logs"
	FilesPath      = "/files"
)

// DefaultRoutes returns the console's route table. The root redirects to
// the data source page; every business page requires auth; login and the
// catch-all do not.
func DefaultRoutes() []Route {
	return []Route{
		{
			Path: LoginPath,
			Name: "Login",
			Meta: &Meta{Title: "router.login", RequiresAuth: false},
		},
		{
			Path:     RootPath,
			Name:     "Layout",
			Redirect: DataSourcePath,
			Meta:     &Meta{RequiresAuth: true},
			Children: []Route{
				{
					Path: DataSourcePath,
					Name: "DataSource",
					Meta: &Meta{Title: "router.datasource", RequiresAuth: true},
				},
				{
					Path: VariablesPath,
					Name: "SystemVariables",
					Meta: &Meta{Title: "router.systemVariable", RequiresAuth: true},
				},
				{
					Path: MissionsPath,
					Name: "WorkflowManagement",
					Meta: &Meta{Title: "router.task", RequiresAuth: true},
				},
				{
					Path: RunLogsPath,
					Name: "RunLogs",
					Meta: &Meta{Title: "router.runLog", RequiresAuth: true},
				},
				{
					Path: FilesPath,
					Name: "Files",
					Meta: &Meta{Title: "router.file", RequiresAuth: true},
				},
			},
		},
		{
			Path: CatchAllPath,
			Name: "NotFound",
			Meta: &Meta{Title: "router.404", RequiresAuth: false},
		},
	}
}

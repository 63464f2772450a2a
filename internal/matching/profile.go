package matching

// Field names a column of one of the two index tables.
type Field string

// Project index fields.
const (
	FieldTitle              Field = "title"
	FieldPreferredCondition Field = "preferred_condition"
	FieldWorkingCondition   Field = "working_condition"
)

// Freelancer index fields.
const (
	FieldJob       Field = "job"
	FieldCareer    Field = "career"
	FieldTechStack Field = "tech_stack"
)

// FreelancerProfile holds the queries a freelancer's index entry produces.
// It is matched against projects.
type FreelancerProfile struct {
	Job       Query
	Career    Query
	TechStack Query
}

// NewFreelancerProfile tokenizes the freelancer's job, flattened career and
// tech stack.
func NewFreelancerProfile(job, career, techStack string, mode Mode) FreelancerProfile {
	return FreelancerProfile{
		Job:       NewQuery(job, mode),
		Career:    NewQuery(career, mode),
		TechStack: NewQuery(techStack, mode),
	}
}

// ProjectProfile holds the queries a project's index entry produces. It is
// matched against freelancers.
type ProjectProfile struct {
	Title     Query
	Preferred Query
	Working   Query
}

// NewProjectProfile tokenizes the project's title and its preferred and
// working conditions.
func NewProjectProfile(title, preferred, working string, mode Mode) ProjectProfile {
	return ProjectProfile{
		Title:     NewQuery(title, mode),
		Preferred: NewQuery(preferred, mode),
		Working:   NewQuery(working, mode),
	}
}

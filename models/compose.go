package models

// ComposeJob is a single composition request. It is built once by the
// caller and never mutated inside the pipeline.
type ComposeJob struct {
	Id           string `json:"id"`
	BaseDir      string `json:"base_dir"`
	FrameRate    int    `json:"frame_rate"`
	OutputName   string `json:"output_name"`
	CdnType      string `json:"cdn_type"`
	CdnUrl       string `json:"cdn_url"`
	CdnAccessKey string `json:"cdn_access_key"`
	CdnSecretKey string `json:"cdn_secret_key"`
	CdnRegion    string `json:"cdn_region"`
	CdnBucket    string `json:"cdn_bucket"`
	OutputKey    string `json:"output_key"`
}

// EncodeRequest describes one sequence-to-video ffmpeg invocation. Codec,
// pixel format and quality are fixed in config so both intermediate
// encodes run with identical parameters.
type EncodeRequest struct {
	InputPattern string `json:"input_pattern"`
	StartIndex   int    `json:"start_index"`
	FrameRate    int    `json:"frame_rate"`
	OutputPath   string `json:"output_path"`
}

// CompositeRequest describes the final scale-and-stack invocation over two
// already encoded clips.
type CompositeRequest struct {
	LeftInput    string `json:"left_input"`
	RightInput   string `json:"right_input"`
	TargetHeight int    `json:"target_height"`
	OutputPath   string `json:"output_path"`
}

// PipelineResult is the terminal outcome of one run.
type PipelineResult struct {
	Id              string `json:"id"`
	Status          string `json:"status"`
	Stage           string `json:"stage"`
	OutputPath      string `json:"output_path"`
	ErrorCode       string `json:"error_code"`
	FailDescription string `json:"fail_description"`
}

type UpdatePipelineStage struct {
	Id              string `json:"id"`
	Stage           string `json:"stage"`
	Status          string `json:"status"`
	StageDuration   int    `json:"stage_duration"` // milliseconds
	OutputPath      string `json:"output_path"`
	FailDescription string `json:"fail_description"`
	ErrorCode       string `json:"error_code"`
}

type CloudStorageConfig struct {
	Type      string `json:"type"`
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Region    string `json:"region"`
}

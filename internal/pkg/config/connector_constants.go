package config

// AzureCloudProvider stores avatars in an Azure Blob Storage container
const AzureCloudProvider = "azure"

// LocalStorageProvider stores avatars on the local filesystem
const LocalStorageProvider = "local"
